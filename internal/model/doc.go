// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model defines the entities of a scheduling problem instance: the
// tasks to be placed, the files they exchange and the resources they can be
// placed on.
//
// # Core Concepts
//
//   - Task: a unit of work with a workload length (instructions), a
//     processing element requirement and the files it reads and writes.
//
//   - FileItem: a named file attached to a task. An OUTPUT file of one task
//     whose name matches an INPUT file of another task implies a data
//     dependency between them.
//
//   - Resource: an execution unit with a processing speed (MIPS), a number of
//     processing elements and a network bandwidth (Mbit/s). Resources also
//     carry live state (idle or busy, requested load) that only the dynamic
//     matcher reads and writes.
//
//   - Pool: the ordered, validated set of resources for one problem instance.
//     The pool order is the iteration order every strategy uses when it has to
//     break a tie between resources.
//
// Why handles?
//
// Tasks and resources are addressed by TaskRef and ResourceRef, integer
// indices into the arenas owned by dag.Graph and Pool. The cost tables, rank
// memo and timelines are plain slices indexed by these handles, so no lookup
// ever needs a type assertion and refs can be used directly as map keys.
//
// Entities are read-only after construction with one exception: the
// ResourceID of a Task, which records the assignment made by a planner or a
// matcher.
package model
