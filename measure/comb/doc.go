// Package comb provides comb response analysis for delay based effects
// such as flangers, choruses and echoes.
//
// The analyzer looks at an impulse response from two sides:
//
//   - Time domain: the echo train. Delay between the direct path and the
//     first echo, echo-to-direct gain and the mean decay ratio between
//     successive echoes (the feedback gain of a recirculating delay).
//   - Frequency domain: the notch pattern. A delayed copy mixed with the
//     direct signal carves evenly spaced magnitude notches; their spacing
//     in Hz is the reciprocal of the delay time.
//
// # Usage
//
//	analyzer := comb.NewAnalyzer(48000) // sample rate
//	metrics, err := analyzer.Analyze(impulseResponse)
//	fmt.Printf("delay = %.1f ms, notch spacing = %.0f Hz\n",
//		metrics.EchoDelay*1000, metrics.NotchSpacing)
package comb
