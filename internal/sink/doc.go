// Package sink provides the audio output devices used by the soundscape
// front end. The default build plays through oto; the headless build tag
// swaps in a paced Null device so the engine runs without a sound card.
package sink
