package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/rules"
)

func defaultTable(t *testing.T) *rules.Table {
	t.Helper()
	cfg := config.DefaultConfig()
	table, err := LoadTable(&cfg)
	require.NoError(t, err)
	return table
}

func classifyAndAssemble(t *testing.T, paths []string, policy DuplicatePolicy) (*Classification, []Group, []Conflict, error) {
	t.Helper()
	c, err := Classify(paths, defaultTable(t))
	require.NoError(t, err)
	groups, conflicts, err := Assemble(c.Records, AssembleOptions{Policy: policy})
	return c, groups, conflicts, err
}

func roles(g Group) []rules.Role {
	out := make([]rules.Role, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.Role
	}
	return out
}

func TestClassify_WoodExample(t *testing.T) {
	c, groups, conflicts, err := classifyAndAssemble(t,
		[]string{"wood_diffuse.png", "wood_rough.png", "wood_normal_ogl.png", "readme.txt"}, PolicyFail)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	require.Len(t, groups, 1)
	assert.Equal(t, "wood", groups[0].Key)
	assert.Equal(t, []rules.Role{rules.RoleDiffuse, rules.RoleNormal, rules.RoleRoughness}, roles(groups[0]))

	assert.Equal(t, 4, c.Stats.FilesProcessed)
	assert.Equal(t, 1, c.Stats.InvalidExtension)
	assert.Equal(t, []string{"readme.txt"}, c.Outcome.InvalidExtension)
	assert.Zero(t, c.Stats.Unrecognized)
	assert.Zero(t, c.Stats.Hopeless)
}

func TestClassify_DirectXNormalSpellings(t *testing.T) {
	for _, normal := range []string{"rock_normal_dx.png", "rock-normal-dx.png", "rock_Normal_DirectX.png", "rock_normal_ogl.png"} {
		t.Run(normal, func(t *testing.T) {
			c, groups, _, err := classifyAndAssemble(t, []string{"rock_diffuse.png", normal}, PolicyFail)
			require.NoError(t, err)
			require.Len(t, groups, 1, "normal map split off its material")
			assert.Equal(t, "rock", groups[0].Key)
			assert.Equal(t, []rules.Role{rules.RoleDiffuse, rules.RoleNormal}, roles(groups[0]))
			assert.Zero(t, c.Stats.Redirected)
		})
	}
}

func TestClassify_ResolutionSuffixKeepsMaterialTogether(t *testing.T) {
	_, groups, _, err := classifyAndAssemble(t,
		[]string{"wood_diffuse_2k.png", "wood_normal_2k.png", "wood_rough_2K.png"}, PolicyFail)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "wood", groups[0].Key)
	assert.Equal(t, []rules.Role{rules.RoleDiffuse, rules.RoleNormal, rules.RoleRoughness}, roles(groups[0]))
}

func TestClassify_UDIMTilesCollapse(t *testing.T) {
	c, groups, _, err := classifyAndAssemble(t,
		[]string{"metal_color.1001.exr", "metal_color.1002.exr"}, PolicyFail)
	require.NoError(t, err)

	require.Len(t, c.Records, 1)
	rec := c.Records[0]
	assert.Equal(t, rules.RoleDiffuse, rec.Role)
	assert.Equal(t, "metal", rec.Key)
	assert.Equal(t, "metal_color.<UDIM>.exr", rec.ResolvedPath)
	assert.Equal(t, 2, c.Stats.UDIMDetected)
	assert.Len(t, c.Outcome.UDIM, 2)

	require.Len(t, groups, 1)
	assert.Equal(t, []rules.Role{rules.RoleDiffuse}, roles(groups[0]))
}

func TestAssemble_DuplicateRole(t *testing.T) {
	paths := []string{"a_diffuse.png", "a_albedo.png"}

	t.Run("strict", func(t *testing.T) {
		_, groups, conflicts, err := classifyAndAssemble(t, paths, PolicyFail)
		var dupErr *DuplicateRoleError
		require.ErrorAs(t, err, &dupErr)
		assert.Nil(t, groups)
		require.Len(t, conflicts, 1)
		assert.Equal(t, []string{"a"}, dupErr.Keys())
		assert.Contains(t, dupErr.Error(), "DIFFUSE")
		assert.Contains(t, dupErr.Summary(), "a_albedo.png")
	})

	t.Run("drop conflicts", func(t *testing.T) {
		_, groups, conflicts, err := classifyAndAssemble(t, paths, PolicyDrop)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "a", groups[0].Key)
		require.Len(t, groups[0].Members, 1)
		assert.Equal(t, "a_diffuse.png", groups[0].Members[0].ResolvedPath, "first-seen is kept")

		require.Len(t, conflicts, 1)
		assert.Equal(t, "a_albedo.png", conflicts[0].Dropped.ResolvedPath)
		assert.Equal(t, rules.RoleDiffuse, conflicts[0].Role)
	})
}

func TestDuplicateRoleError_Message(t *testing.T) {
	c := Conflict{
		Key:     "a",
		Role:    rules.RoleAO,
		Kept:    Record{ResolvedPath: "a_ao.png"},
		Dropped: Record{ResolvedPath: "a_occlusion.png"},
	}
	one := &DuplicateRoleError{Conflicts: []Conflict{c}}
	assert.Equal(t, `material "a" has more than one AO texture (a_ao.png, a_occlusion.png)`, one.Error())

	three := &DuplicateRoleError{Conflicts: []Conflict{c, c, c}}
	assert.True(t, strings.HasSuffix(three.Error(), "and 2 more conflict(s)"))
}

func TestClassify_Redirection(t *testing.T) {
	c, groups, _, err := classifyAndAssemble(t, []string{
		"rock_diffuse.png",
		"rock_cavity.png",   // no alias, contains key "rock"
		"brick_mask.png",    // no alias, no known key
		"rock_old_ao.png",   // key "rock_old"
		"rock_old_dirt.png", // longest key wins
	}, PolicyFail)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Stats.Unrecognized)
	assert.Equal(t, 2, c.Stats.Redirected)
	assert.Equal(t, 1, c.Stats.Hopeless)
	assert.Equal(t, []string{"brick_mask.png"}, c.Outcome.Hopeless)
	assert.ElementsMatch(t, []string{"rock_cavity.png", "rock_old_dirt.png"}, c.Outcome.Redirected)

	require.Len(t, groups, 2)
	assert.Equal(t, "rock", groups[0].Key)
	assert.Equal(t, []rules.Role{rules.RoleDiffuse, rules.RoleNone}, roles(groups[0]))
	assert.Equal(t, "rock_old", groups[1].Key)
	assert.Equal(t, "rock_old_dirt.png", groups[1].Members[1].ResolvedPath)
}

func TestRedirect_OnlyKnownKeys(t *testing.T) {
	paths := []string{"oak_bark_color.png", "oak_bark_mask.png", "pine_mask.png", "pine_moss.png", "readme.md"}
	c, err := Classify(paths, defaultTable(t))
	require.NoError(t, err)

	known := make(map[string]bool)
	for _, k := range KnownKeys(c.Records) {
		known[k] = true
	}
	for _, r := range c.Records {
		assert.True(t, known[r.Key], "record %s has key %q not derived from a classified record", r.ResolvedPath, r.Key)
	}
	assert.Len(t, c.Hopeless, 2)
}

func TestClassify_RoleOnlyStemFallsBackToDirectory(t *testing.T) {
	c, groups, _, err := classifyAndAssemble(t,
		[]string{"textures/oak/diffuse.png", "textures/oak/normal.png", "roughness.png"}, PolicyFail)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "material", groups[0].Key)
	assert.Equal(t, "oak", groups[1].Key)
	assert.Zero(t, c.Stats.Hopeless)
}

func TestClassify_Deterministic(t *testing.T) {
	paths := []string{
		"z_diffuse.png", "a_rough.png", "m_normal.1001.exr", "m_normal.1002.exr",
		"a_diffuse.tif", "a_mask.png", "z_spec.txt", "lonely.png",
	}
	table := defaultTable(t)

	run := func() ([]Group, RunStats) {
		c, err := Classify(paths, table)
		require.NoError(t, err)
		groups, _, err := Assemble(c.Records, AssembleOptions{Policy: PolicyFail})
		require.NoError(t, err)
		c.Stats.GroupsCreated = len(groups)
		return groups, c.Stats
	}
	g1, s1 := run()
	g2, s2 := run()
	assert.Equal(t, g1, g2)
	assert.Equal(t, s1, s2)

	keys := make([]string, len(g1))
	for i, g := range g1 {
		keys[i] = g.Key
	}
	assert.Equal(t, []string{"a", "m", "z"}, keys)
}

func TestClassify_EmptyInput(t *testing.T) {
	_, err := Classify(nil, defaultTable(t))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAssemble_SkipUnknown(t *testing.T) {
	records := []Record{
		{ResolvedPath: "rock_diffuse.png", Stem: "rock_diffuse", Role: rules.RoleDiffuse, Key: "rock", Extension: "png"},
		{ResolvedPath: "rock_cavity.png", Stem: "rock_cavity", Key: "rock", Extension: "png"},
		{ResolvedPath: "moss_mask.png", Stem: "moss_mask", Key: "moss", Extension: "png"},
	}

	groups, _, err := Assemble(records, AssembleOptions{Policy: PolicyFail})
	require.NoError(t, err)
	assert.Len(t, groups, 2, "a role-less group from redirection is still valid")

	groups, _, err = Assemble(records, AssembleOptions{Policy: PolicyFail, SkipUnknown: true})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "rock", groups[0].Key)
	assert.Len(t, groups[0].Members, 1)
}

func TestAssemble_DropsKeylessAndDuplicates(t *testing.T) {
	r := Record{ResolvedPath: "a_ao.png", Stem: "a_ao", Role: rules.RoleAO, Key: "a", Extension: "png"}
	groups, conflicts, err := Assemble([]Record{r, r, {ResolvedPath: "x.png", Stem: "x"}}, AssembleOptions{})
	require.NoError(t, err)
	assert.Empty(t, conflicts, "exact duplicates collapse instead of conflicting")
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 1)
}

func TestGroup_Entries(t *testing.T) {
	g := Group{Key: "w", Members: []Record{
		{ResolvedPath: "w_d.png", Role: rules.RoleDiffuse, Extension: "png"},
		{ResolvedPath: "w_x.exr", Extension: "exr"},
	}}
	assert.Equal(t, []Binding{
		{Role: rules.RoleDiffuse, ResolvedPath: "w_d.png", Extension: "png"},
		{ResolvedPath: "w_x.exr", Extension: "exr"},
	}, g.Entries())
	_, ok := g.Member(rules.RoleDiffuse)
	assert.True(t, ok)
	_, ok = g.Member(rules.RoleNormal)
	assert.False(t, ok)
	_, ok = g.Member(rules.RoleNone)
	assert.False(t, ok)
	assert.Len(t, g.Unknown(), 1)
}

func TestLoadTable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Presets = []string{"minimal"}
	cfg.Custom = []string{"albedo", "", "", "", "", "", ""}
	table, err := LoadTable(&cfg)
	require.NoError(t, err)
	assert.Contains(t, table.Aliases(rules.RoleDiffuse), "albedo")
	assert.Contains(t, table.Aliases(rules.RoleDiffuse), "diffuse")

	cfg.Presets = []string{"nope"}
	_, err = LoadTable(&cfg)
	var cfgErr *rules.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	cfg.Presets = nil
	cfg.Custom = []string{"", "", "", "", "", "", ""}
	_, err = LoadTable(&cfg)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadTable_CustomReplacesDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Custom = []string{"bc", "", "", "", "", "", "color"}
	table, err := LoadTable(&cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"custom"}, table.Sources())
	assert.Equal(t, []string{"bc"}, table.Aliases(rules.RoleDiffuse))
	assert.Equal(t, []string{"color"}, table.Aliases(rules.RoleOpacity))
	assert.Equal(t, 2, table.Len())

	c, err := Classify([]string{"/t/leaf_bc.png", "/t/leaf_color.png", "/t/leaf_diffuse.png"}, table)
	require.NoError(t, err)
	roles := map[string]rules.Role{}
	for _, r := range c.Records {
		roles[r.Stem] = r.Role
	}
	assert.Equal(t, rules.RoleDiffuse, roles["leaf_bc"])
	assert.Equal(t, rules.RoleOpacity, roles["leaf_color"], "custom row owns the alias")
	assert.Equal(t, 1, c.Stats.Redirected, "diffuse is not an alias any more")

	cfg.Presets = []string{"default"}
	table, err = LoadTable(&cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "custom"}, table.Sources())
}

func TestDiscover(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{"/tex/wood/wood_diffuse.png", "/tex/wood/deep/wood_ao.png", "/tex/readme.txt", "/tex/b.png"} {
		require.NoError(t, afero.WriteFile(fs, p, []byte("x"), 0o644))
	}
	files, err := Discover(fs, "/tex")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/tex/b.png",
		"/tex/readme.txt",
		"/tex/wood/deep/wood_ao.png",
		"/tex/wood/wood_diffuse.png",
	}, files)

	_, err = Discover(fs, "/missing")
	assert.Error(t, err)
}

func TestResolveInputs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a/x_diffuse.png", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/b/y_diffuse.png", nil, 0o644))

	t.Run("auto picks folder", func(t *testing.T) {
		in, err := ResolveInputs(fs, config.ModeAuto, []string{"/a", "/b/"})
		require.NoError(t, err)
		require.Len(t, in, 2)
		assert.Equal(t, "/a", in[0].Name)
		assert.Equal(t, "/b", in[1].Name)
		assert.Equal(t, []string{"/b/y_diffuse.png"}, in[1].Paths)
	})

	t.Run("auto picks file", func(t *testing.T) {
		in, err := ResolveInputs(fs, config.ModeAuto, []string{"/a/x_diffuse.png", "/b"})
		require.NoError(t, err)
		require.Len(t, in, 1)
		assert.Equal(t, []string{"/a/x_diffuse.png", "/b"}, in[0].Paths)
	})

	t.Run("folder rejects files", func(t *testing.T) {
		_, err := ResolveInputs(fs, config.ModeFolder, []string{"/a/x_diffuse.png"})
		assert.Error(t, err)
	})

	t.Run("no args", func(t *testing.T) {
		_, err := ResolveInputs(fs, config.ModeFile, nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) add(level, format string, args ...interface{}) {
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Info(f string, a ...interface{})    { l.add("INFO", f, a...) }
func (l *recordingLogger) Success(f string, a ...interface{}) { l.add("SUCCESS", f, a...) }
func (l *recordingLogger) Warn(f string, a ...interface{})    { l.add("WARN", f, a...) }
func (l *recordingLogger) Error(f string, a ...interface{})   { l.add("ERROR", f, a...) }
func (l *recordingLogger) Stat(f string, a ...interface{})    { l.add("STAT", f, a...) }
func (l *recordingLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		l.add("DEBUG", f, a...)
	}
}

func (l *recordingLogger) contains(s string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

func newRunner(t *testing.T, mode config.DuplicateMode) (*Runner, *recordingLogger) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OnDuplicate = mode
	log := &recordingLogger{}
	return &Runner{Config: &cfg, Table: defaultTable(t), Log: log}, log
}

func TestRunner_CumulativeStats(t *testing.T) {
	r, log := newRunner(t, config.DuplicateFail)
	res, err := r.Run(context.Background(), []Input{
		{Name: "wood", Paths: []string{"wood_diffuse.png", "wood_rough.png", "readme.txt"}},
		{Name: "empty"},
		{Name: "metal", Paths: []string{"metal_color.1001.exr", "metal_color.1002.exr"}},
	})
	require.NoError(t, err)

	require.Len(t, res.Batches, 2)
	assert.Equal(t, 5, res.Stats.FilesProcessed)
	assert.Equal(t, 2, res.Stats.UDIMDetected)
	assert.Equal(t, 1, res.Stats.InvalidExtension)
	assert.Equal(t, 2, res.Stats.GroupsCreated)
	assert.Len(t, res.Groups(), 2)
	assert.True(t, log.contains("Nothing to classify in empty"))
	assert.True(t, log.contains("Materials created: 2"))
	assert.True(t, log.contains("Files ignored: 1"))
}

func TestRunner_VerboseListsRolelessMembers(t *testing.T) {
	r, log := newRunner(t, config.DuplicateFail)
	r.Config.Verbose = true
	_, err := r.Run(context.Background(), []Input{
		{Name: "sel", Paths: []string{"wood_diffuse.png", "wood_grain.png", "wood_grain_fine.png"}},
	})
	require.NoError(t, err)
	assert.True(t, log.contains("DEBUG   2 textures without a role"))
	assert.True(t, log.contains("Files ignored: 0"))
}

func TestRunner_EmptyRun(t *testing.T) {
	r, _ := newRunner(t, config.DuplicateFail)
	_, err := r.Run(context.Background(), []Input{{Name: "a"}, {Name: "b"}})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRunner_DuplicatePolicies(t *testing.T) {
	inputs := []Input{{Name: "sel", Paths: []string{"a_diffuse.png", "a_albedo.png"}}}

	t.Run("fail aborts", func(t *testing.T) {
		r, log := newRunner(t, config.DuplicateFail)
		_, err := r.Run(context.Background(), inputs)
		var dupErr *DuplicateRoleError
		assert.ErrorAs(t, err, &dupErr)
		assert.True(t, log.contains("Duplicate role"))
	})

	t.Run("drop keeps first", func(t *testing.T) {
		r, _ := newRunner(t, config.DuplicateDrop)
		res, err := r.Run(context.Background(), inputs)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Stats.Conflicts)
		assert.Equal(t, []string{"a_albedo.png"}, res.Outcome.Conflicted)
	})

	t.Run("ask accepted", func(t *testing.T) {
		r, _ := newRunner(t, config.DuplicateAsk)
		asked := 0
		r.Confirm = func(*DuplicateRoleError) bool { asked++; return true }
		res, err := r.Run(context.Background(), inputs)
		require.NoError(t, err)
		assert.Equal(t, 1, asked)
		require.Len(t, res.Groups(), 1)
		assert.Len(t, res.Groups()[0].Members, 1)
	})

	t.Run("ask declined", func(t *testing.T) {
		r, _ := newRunner(t, config.DuplicateAsk)
		r.Confirm = func(*DuplicateRoleError) bool { return false }
		_, err := r.Run(context.Background(), inputs)
		var dupErr *DuplicateRoleError
		assert.ErrorAs(t, err, &dupErr)
	})

	t.Run("ask without prompt", func(t *testing.T) {
		r, _ := newRunner(t, config.DuplicateAsk)
		_, err := r.Run(context.Background(), inputs)
		var dupErr *DuplicateRoleError
		assert.ErrorAs(t, err, &dupErr)
	})
}

func TestRunner_Cancelled(t *testing.T) {
	r, _ := newRunner(t, config.DuplicateFail)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, []Input{{Name: "a", Paths: []string{"a_diffuse.png"}}})
	assert.True(t, errors.Is(err, context.Canceled))
}
