// Package domain contains the core domain entities and value objects for curvemark.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (transport, file system, logging)
// and contains only data and the invariants attached to it.
//
// # Entities
//
//   - [Path]: An ordered sequence of [Pose] values with a frame header
//   - [CurvaturePoint]: A path pose paired with its discrete curvature
//   - [MarkerConfig]: Immutable rendering and flagging parameters
//   - [Marker]: A renderable primitive identified by (namespace, id)
//   - [MarkerBatch]: An ordered set of markers published as one unit
//
// # Wire Format
//
// Paths and marker batches serialize to JSON shaped like the ROS nav_msgs/Path
// and visualization_msgs/MarkerArray messages, so existing viewers and bridges
// can consume them without translation.
package domain
