// Package floorplan renders packed symmetry islands.
//
// A [Layout] is the serializable result of a pack: the placed blocks, the
// symmetry axis, and the bounding box. Sinks turn a layout into JSON for
// tooling and APIs, or into SVG for visual inspection; the B*-tree topology
// itself can be exported as Graphviz DOT and rasterized to SVG or PNG.
package floorplan
