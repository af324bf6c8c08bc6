// Package terminal resolves colors against terminal capability tiers.
//
// Features:
//   - Capability detection from environment (NO_COLOR, COLORTERM, TERM)
//   - Exact nearest-color quantization to xterm-256 and ANSI-16 palettes
//   - Monochrome tier bucketing by luminance
//   - SGR emission and tcell color mapping for the quantized result
//
// Quantization is pure and deterministic; no function here touches the tty.
package terminal
