// Package costmodel derives the cost tables a planner works with from a
// workflow graph and a resource pool:
//
//   - the computation table, the time in seconds each task takes on each
//     resource, or Infeasible when the resource has too few processing
//     elements;
//   - the transfer table, the time in seconds needed to move the files a
//     parent produces for a child, estimated with the pool's average
//     bandwidth.
//
// Tables are plain values created per planning run. Building them twice from
// the same inputs yields identical tables.
package costmodel
