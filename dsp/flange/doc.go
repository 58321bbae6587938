// Package flange implements a streaming multi-channel flanger: a short,
// LFO-modulated delay mixed back into the dry signal, with optional feedback
// regeneration, in the style of the classic stereo flanging effect.
//
// A [Session] owns all processing state. Construct one with [NewSession],
// feed it interleaved frames through [Session.Process], and release it with
// [Session.Close]. Sessions are single threaded; the caller serializes
// Process calls.
//
//	        +--(feedback)-----------+
//	        |                       |    wet
//	       _v_   _______________    |    _
//	  +-->| + |-| swept delay   |---+-->| \        ___
//	  |   |___| |_______________|       |  )----->|   |
//	  |              ^                  |_/       |   |
//	in|            __|__                          | + |--> out
//	  |           | LFO |                 dry     |___|
//	  |           |_____|                           ^
//	  +---------------------------------------------+
//
// Delay time sweeps between the base delay and base delay plus depth, at the
// configured speed, following a sine or triangle wave. For multi-channel
// streams each channel reads the shared LFO table at a configurable phase
// offset, which produces the characteristic widened stereo flange.
package flange
