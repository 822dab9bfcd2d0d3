// Package render groups the output sinks for packed placements.
//
// # Overview
//
// Rendering is split by what is being drawn:
//
//   - [floorplan]: the packed symmetry island — layout JSON for tooling,
//     SVG for visual inspection, and the B*-tree topology as Graphviz DOT
//     with optional SVG/PNG rasterization.
//
// All sinks are deterministic: blocks are emitted in sorted order so the
// same layout always renders to the same bytes, which keeps artifacts
// cacheable by content hash.
//
// [floorplan]: github.com/matzehuels/symisland/pkg/render/floorplan
package render
