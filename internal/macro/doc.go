// Package macro runs user Lua scripts against the deck editor.
//
// Scripts execute inside a sandboxed interpreter with only the safe Lua
// standard libraries available. A deck module is exposed to Lua with
// functions for adding, removing, and moving cards; every mutation goes
// through the command history, so macro edits are undoable like any
// interactive edit.
package macro
