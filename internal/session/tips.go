package session

var tips = []string{
	"LangChain is great for complex reasoning!",
	"LlamaIndex excels at document processing!",
	"Both backends speak the same tiny JSON protocol!",
	"You can switch backends anytime!",
	"Switching backends starts a fresh conversation! 🎉",
}

// TipFor returns the tip shown after n messages
func TipFor(n int) string {
	if n < 0 {
		n = 0
	}
	return tips[n%len(tips)]
}
