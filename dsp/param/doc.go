// Package param provides ranged, automatable scalar parameters.
//
// A [Param] holds a current (instantaneous) value and a target. Targets are
// clamped to the parameter's range before they are accepted, and changes are
// applied as linear ramps over a fixed number of frames so that control
// updates never produce audible steps. A new ramp always starts from the
// instantaneous value, so an in-flight ramp is simply re-targeted.
//
// A [Store] groups named parameters with their declared ranges.
package param
