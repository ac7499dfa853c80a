// Package planner turns one material group into a MaterialPlan: the list of
// image nodes, helper nodes and shader inputs the node-construction side
// creates for the selected renderer.
//
// Implemented:
//   - MaterialPlan, TextureNode, HelperNode, Signature (types.go)
//   - BuildPlan: renderer dispatch and unique node naming (planner.go)
//   - Karma: MaterialX standard surface through tiled images, with AO
//     multiplied into base color, normal map and remapped displacement
//     (karma.go)
//   - Mantra: principled shader texture parameters (mantra.go)
package planner
