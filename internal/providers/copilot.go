package providers

const CopilotBin = "gh"

// Copilot shells out to `gh copilot <mode> <question>`. It needs no key; the
// gh CLI carries its own authentication.
type Copilot struct {
	Bin string
}

func (c *Copilot) Name() ID { return InteractiveAssistant }

func (c *Copilot) Build(question string, _ Credentials, mode string) Request {
	bin := c.Bin
	if bin == "" {
		bin = CopilotBin
	}
	return Request{Command: bin, Args: []string{"copilot", mode, question}}
}

// Parse returns stdout verbatim. A failed run never gets here: the command
// transport already turned it into a failure carrying stderr.
func (c *Copilot) Parse(raw RawResponse) (string, error) {
	return string(raw.Body), nil
}
