// Package scheduler decides which resource runs which task.
//
// It offers two alternative strategies, selected by the caller:
//
//   - Planner (HEFT): a static list planner that schedules the whole
//     workflow before anything runs. Tasks are taken in decreasing upward
//     rank and each is placed on the resource giving it the earliest finish
//     time, filling holes in resource timelines where possible.
//
//   - Matcher (MinMin, Static): a round-based matcher that only sees the
//     tasks that are ready now and the resources that are idle now. MinMin
//     takes the shortest ready task first and gives it the idle resource
//     with the highest requested load. Static replays the assignments a
//     planner recorded on the tasks.
//
// # How a run works
//
// A planning run builds the cost tables, ranks every task and then walks the
// rank order once; all working state (tables, ranks, timelines) lives in the
// returned Plan and is discarded with it. A matching round mutates only the
// resources it is given (idle -> busy) and the tasks it assigns; the engine
// driving the rounds owns that state between rounds and frees resources when
// tasks complete.
//
// Both run to completion synchronously. Neither is safe to call concurrently
// on shared tasks or resources.
package scheduler
