// Package interact translates pointer, wheel, touch and key input into
// synth parameter targets and scene updates.
//
// Every event is applied synchronously by [Mapper.Handle]; nothing is
// queued or dropped. The only state carried between events is the drag
// session and the selected shape, waveform and scale.
package interact
