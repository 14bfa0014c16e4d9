package namer

// Player is the roster context handed to the name generator.
type Player struct {
	Username string `json:"username"`
	Country  string `json:"country"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []message `json:"messages"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type aiResponse struct {
	Result struct {
		Response string `json:"response"`
	} `json:"result"`
	Success bool `json:"success"`
}
