// Package placement implements the ASF-B*-tree core of the symisland
// analog-placement engine.
//
// # Overview
//
// A symmetry group of rectangular modules is encoded as an automatic
// symmetric-feasible B*-tree (ASF-B*-tree): a binary tree over the group's
// representative modules whose shape guarantees, together with a post-packing
// mirroring step, that the resulting placement is a symmetry island honoring
// a vertical or horizontal symmetry axis.
//
// The packing pipeline is:
//
//  1. BuildInitialTree constructs a symmetric-feasible topology.
//  2. Pack places representatives with a contour structure, compacts them,
//     computes the symmetry axis, and positions mirrored and self-symmetric
//     modules exactly.
//  3. ValidateSymmetry and ValidateConnectivity check the island invariants.
//
// An outer annealer mutates the tree through Rotate, Move, and Swap and calls
// Pack after every perturbation. Pack reports success as a boolean so the
// annealer can reject a move without aborting; structural errors from tree
// construction are fatal and surface as wrapped sentinel errors.
//
// # Coordinates
//
// Module positions are non-negative integers with the origin at the bottom
// left. The symmetry axis is kept as a float64 because centers of odd-width
// modules fall on half-integers; mirror placements are quantized to the
// nearest integer and validated against a 1.0-unit tolerance.
package placement
