package planner

import (
	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/naming"
	"github.com/backmassage/pbrexpress/internal/pipeline"
)

// BuildPlan produces the MaterialPlan for one group with the renderer
// selected in cfg. Node names come from the member display names and are
// made unique within the material.
//
// Flow:
//  1. Name every texture (display name, deduplicated)
//  2. Wire each texture by role for the renderer
//  3. Keep only the helper nodes something is connected to
func BuildPlan(cfg *config.Config, g pipeline.Group) *MaterialPlan {
	plan := &MaterialPlan{Name: g.Key, Renderer: cfg.Renderer}
	resolver := naming.NewNameResolver()

	nodes := make([]TextureNode, len(g.Members))
	for i, m := range g.Members {
		nodes[i] = TextureNode{
			Name: resolver.Resolve(m.Name()),
			File: m.ResolvedPath,
			Role: m.Role,
		}
	}

	switch cfg.Renderer {
	case config.RendererMantra:
		plan.Shader = ShaderMantra
		wireMantra(nodes)
	default:
		plan.Shader = ShaderKarma
		plan.Helpers = wireKarma(nodes)
	}
	plan.Textures = nodes
	return plan
}

// BuildPlans plans every group in order.
func BuildPlans(cfg *config.Config, groups []pipeline.Group) []*MaterialPlan {
	plans := make([]*MaterialPlan, len(groups))
	for i, g := range groups {
		plans[i] = BuildPlan(cfg, g)
	}
	return plans
}
