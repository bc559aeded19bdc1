package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func embedAlphaProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Use the alpha channel as a fourth carrier channel. Must match between hide and reveal. Defaults to the server setting.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, whether the format is lossless, and how much data it can hide.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Capacity
		{
			Name:        "image_capacity",
			Description: "Report how many bits an image can hide and the largest text (characters) and binary (bytes) payload that fit.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty("Absolute path to the cover image"),
					"embed_alpha": embedAlphaProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Hide / Reveal
		{
			Name:        "image_hide_text",
			Description: "Hide a text message in the least-significant bits of an image and save the result as PNG. Characters must be in the range U+0000-U+00FF (Latin-1), at most 65535 of them. Long messages spill into higher bit-planes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the cover image"),
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Message to hide",
					},
					"output_path": pathProperty("Where to write the stego PNG. Defaults to the cover path with the configured suffix and a .png extension"),
					"embed_alpha": embedAlphaProperty(),
				},
				"required": []string{"path", "text"},
			},
		},
		{
			Name:        "image_reveal_text",
			Description: "Recover a text message hidden with image_hide_text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty("Absolute path to the stego image"),
					"embed_alpha": embedAlphaProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_hide_data",
			Description: "Hide arbitrary bytes (base64) in the lowest bit-plane of an image and save the result as PNG. Fails without writing anything if the payload does not fit.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the cover image"),
					"data_base64": map[string]interface{}{
						"type":        "string",
						"description": "Payload bytes, standard base64",
					},
					"output_path": pathProperty("Where to write the stego PNG. Defaults to the cover path with the configured suffix and a .png extension"),
					"embed_alpha": embedAlphaProperty(),
				},
				"required": []string{"path", "data_base64"},
			},
		},
		{
			Name:        "image_reveal_data",
			Description: "Recover bytes hidden with image_hide_data. Returns them base64-encoded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty("Absolute path to the stego image"),
					"embed_alpha": embedAlphaProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Analysis
		{
			Name:        "image_bit_plane",
			Description: "Render one bit-plane of one channel as a black and white PNG. Useful for seeing where data was embedded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"channel": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"red", "green", "blue", "alpha"},
						"description": "Channel to render (default red)",
						"default":     "red",
					},
					"plane": map[string]interface{}{
						"type":        "integer",
						"description": "Bit index 0-7, 0 is the least significant (default 0)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_compare_stego",
			Description: "Compare a cover image with its stego version: changed channel values, highest bit-plane touched, PSNR and perceptual colour distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"original_path": pathProperty("Absolute path to the cover image"),
					"stego_path":    pathProperty("Absolute path to the stego image"),
				},
				"required": []string{"original_path", "stego_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
