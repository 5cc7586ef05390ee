package model

// ================ Config ================

type ConversationConfig struct {
	TTL   string `envconfig:"CONVERSATION_TTL" default:"15m"`
	Tools struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"10"`
	}
}

type ChatModelConfig struct {
	Model       string  `envconfig:"CHAT_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"CHAT_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"CHAT_TEMPERATURE" default:"0.4"`
}

type IdentityConfig struct {
	// TTL bounds how long a parsed identity is trusted before the caller is
	// treated as a guest again.
	TTL string `envconfig:"IDENTITY_TTL" default:"30m"`
}

type ServerConfig struct {
	Addr string `envconfig:"SERVER_ADDR" default:":8000"`
	// StreamDelayMS paces SSE chunk emission so the voice platform can keep up.
	StreamDelayMS int `envconfig:"STREAM_DELAY_MS" default:"10"`
}
