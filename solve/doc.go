// Package solve is the top-level orchestrator: given a store and the group
// to solve, it freezes earlier groups, emits that group's equations, runs
// Phase A substitution, classifies the remaining system's rank and, if it
// looks solvable, runs the damped Newton-Raphson iteration to convergence.
//
// Solve never mutates a group's constraints or entities — only Param.Val,
// Param.Known and Param.Substd change over the course of a call.
package solve
