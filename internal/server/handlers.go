package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ironsheep/image-stego-mcp/internal/imaging"
	"github.com/ironsheep/image-stego-mcp/internal/stego"
)

// Error kinds reported in the data of a failed tool call.
const (
	ErrorKindInvalidPayload = "invalid_payload"
	ErrorKindCorruptFrame   = "corrupt_frame"
	ErrorKindInvalidInput   = "invalid_input"
	ErrorKindNotFound       = "not_found"
	ErrorKindInternal       = "internal"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_hide_text", "image_capacity").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolErrorData is attached to the JSON-RPC error of a failed tool call.
type ToolErrorData struct {
	// Kind classifies the failure so clients can tell a payload they should
	// shrink (invalid_payload) from an image that holds no valid frame
	// (corrupt_frame).
	Kind string `json:"kind"`

	// Details is the underlying Go error string.
	Details string `json:"details"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000 and
// a ToolErrorData payload.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		kind := classifyError(err)
		s.log.Warn().
			Str("tool", params.Name).
			Str("kind", kind).
			Err(err).
			Dur("elapsed", time.Since(start)).
			Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolErrorData{
			Kind:    kind,
			Details: err.Error(),
		})
	}

	s.log.Debug().
		Str("tool", params.Name).
		Dur("elapsed", time.Since(start)).
		Msg("tool succeeded")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/stego function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Capacity
	case "image_capacity":
		return s.handleImageCapacity(args)

	// Hide / Reveal
	case "image_hide_text":
		return s.handleImageHideText(args)
	case "image_reveal_text":
		return s.handleImageRevealText(args)
	case "image_hide_data":
		return s.handleImageHideData(args)
	case "image_reveal_data":
		return s.handleImageRevealData(args)

	// Analysis
	case "image_bit_plane":
		return s.handleImageBitPlane(args)
	case "image_compare_stego":
		return s.handleImageCompareStego(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidInput, name)
	}
}

var errInvalidInput = errors.New("invalid input")

// classifyError maps an error chain to one of the ErrorKind constants.
func classifyError(err error) string {
	switch {
	case errors.Is(err, stego.ErrPayloadTooLarge), errors.Is(err, stego.ErrValueOutOfRange):
		return ErrorKindInvalidPayload
	case errors.Is(err, stego.ErrMalformedFrame), errors.Is(err, stego.ErrCapacityExhausted):
		return ErrorKindCorruptFrame
	case errors.Is(err, os.ErrNotExist):
		return ErrorKindNotFound
	case errors.Is(err, errInvalidInput), errors.Is(err, imaging.ErrLossyFormat),
		errors.Is(err, stego.ErrInvalidCarrier):
		return ErrorKindInvalidInput
	default:
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return ErrorKindInvalidInput
		}
		return ErrorKindInternal
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// embedAlpha resolves a per-call override against the server default.
func (s *Server) embedAlpha(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.cfg.EmbedAlpha
}

// outputPath returns the requested output path or derives one from src.
func (s *Server) outputPath(src, requested string) string {
	if requested != "" {
		return requested
	}
	return imaging.DefaultOutputPath(src, s.cfg.OutputSuffix)
}

func requirePath(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", errInvalidInput, field)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Capacity Handler ===

type imageCapacityArgs struct {
	Path       string `json:"path"`
	EmbedAlpha *bool  `json:"embed_alpha"`
}

func (s *Server) handleImageCapacity(args json.RawMessage) (interface{}, error) {
	var a imageCapacityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.Capacity(s.cache, a.Path, s.embedAlpha(a.EmbedAlpha))
}

// === Hide / Reveal Handlers ===

type imageHideTextArgs struct {
	Path       string `json:"path"`
	Text       string `json:"text"`
	OutputPath string `json:"output_path"`
	EmbedAlpha *bool  `json:"embed_alpha"`
}

func (s *Server) handleImageHideText(args json.RawMessage) (interface{}, error) {
	var a imageHideTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}

	result, err := imaging.Hide(s.cache, a.Path,
		stego.Payload{Mode: stego.ModeText, Data: []byte(a.Text)},
		imaging.HideOptions{
			OutputPath:   s.outputPath(a.Path, a.OutputPath),
			IncludeAlpha: s.embedAlpha(a.EmbedAlpha),
		})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("output", result.OutputPath).
		Int("chars", result.Frame.Units).
		Uint8("highest_plane", result.Frame.HighestPlane).
		Msg("text hidden")
	return result, nil
}

// RevealTextResult is returned by image_reveal_text.
type RevealTextResult struct {
	Text          string       `json:"text"`
	Frame         *stego.Stats `json:"frame"`
	PayloadDigest string       `json:"payload_digest"`
}

type imageRevealArgs struct {
	Path       string `json:"path"`
	EmbedAlpha *bool  `json:"embed_alpha"`
}

func (s *Server) handleImageRevealText(args json.RawMessage) (interface{}, error) {
	var a imageRevealArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}

	revealed, err := imaging.Reveal(s.cache, a.Path, stego.ModeText, s.embedAlpha(a.EmbedAlpha))
	if err != nil {
		return nil, err
	}
	return &RevealTextResult{
		Text:          string(revealed.Payload),
		Frame:         revealed.Frame,
		PayloadDigest: revealed.PayloadDigest,
	}, nil
}

type imageHideDataArgs struct {
	Path       string `json:"path"`
	DataBase64 string `json:"data_base64"`
	OutputPath string `json:"output_path"`
	EmbedAlpha *bool  `json:"embed_alpha"`
}

func (s *Server) handleImageHideData(args json.RawMessage) (interface{}, error) {
	var a imageHideDataArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(a.DataBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: data_base64: %v", errInvalidInput, err)
	}

	result, err := imaging.Hide(s.cache, a.Path,
		stego.Payload{Mode: stego.ModeBinary, Data: data},
		imaging.HideOptions{
			OutputPath:   s.outputPath(a.Path, a.OutputPath),
			IncludeAlpha: s.embedAlpha(a.EmbedAlpha),
		})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("output", result.OutputPath).
		Int("bytes", result.Frame.Units).
		Msg("data hidden")
	return result, nil
}

// RevealDataResult is returned by image_reveal_data.
type RevealDataResult struct {
	DataBase64    string       `json:"data_base64"`
	Frame         *stego.Stats `json:"frame"`
	PayloadDigest string       `json:"payload_digest"`
}

func (s *Server) handleImageRevealData(args json.RawMessage) (interface{}, error) {
	var a imageRevealArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}

	revealed, err := imaging.Reveal(s.cache, a.Path, stego.ModeBinary, s.embedAlpha(a.EmbedAlpha))
	if err != nil {
		return nil, err
	}
	return &RevealDataResult{
		DataBase64:    base64.StdEncoding.EncodeToString(revealed.Payload),
		Frame:         revealed.Frame,
		PayloadDigest: revealed.PayloadDigest,
	}, nil
}

// === Analysis Handlers ===

type imageBitPlaneArgs struct {
	Path    string `json:"path"`
	Channel string `json:"channel"`
	Plane   int    `json:"plane"`
}

func (s *Server) handleImageBitPlane(args json.RawMessage) (interface{}, error) {
	var a imageBitPlaneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	if a.Channel == "" {
		a.Channel = "red"
	}

	channel := -1
	for i, name := range imaging.ChannelNames {
		if name == a.Channel {
			channel = i
		}
	}
	if channel < 0 {
		return nil, fmt.Errorf("%w: unknown channel: %s", errInvalidInput, a.Channel)
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, err := imaging.BitPlane(img, channel, a.Plane)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	return result, nil
}

type imageCompareStegoArgs struct {
	OriginalPath string `json:"original_path"`
	StegoPath    string `json:"stego_path"`
}

func (s *Server) handleImageCompareStego(args json.RawMessage) (interface{}, error) {
	var a imageCompareStegoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("original_path", a.OriginalPath); err != nil {
		return nil, err
	}
	if err := requirePath("stego_path", a.StegoPath); err != nil {
		return nil, err
	}

	original, err := s.cache.Load(a.OriginalPath)
	if err != nil {
		return nil, err
	}
	stegoImg, err := s.cache.Load(a.StegoPath)
	if err != nil {
		return nil, err
	}
	result, err := imaging.CompareStego(original, stegoImg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	return result, nil
}
