// Package server implements the MCP (Model Context Protocol) server for image
// steganography tools.
//
// This package provides a JSON-RPC 2.0 server that lets MCP-compatible clients
// hide text or binary payloads in the low bit-planes of an image, recover them
// and inspect the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: zerolog JSON on stderr
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata, including capacity
//   - image_dimensions: Get width and height
//
// Capacity:
//   - image_capacity: Bits available and the largest payloads that fit
//
// Hide / Reveal:
//   - image_hide_text: Hide Latin-1 text, spilling into higher planes if needed
//   - image_reveal_text: Recover hidden text
//   - image_hide_data: Hide base64 bytes in plane 0
//   - image_reveal_data: Recover hidden bytes as base64
//
// Analysis:
//   - image_bit_plane: Render one channel's bit-plane as an image
//   - image_compare_stego: Measure how a stego image differs from its cover
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. Hide tools evict
// their output path so a later reveal reads the new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: ToolErrorData with a kind and the Go error string
//
// A kind of invalid_payload means the payload was rejected before anything
// was written (too large, or a character outside Latin-1). corrupt_frame means
// the image does not hold a frame of the requested kind.
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
