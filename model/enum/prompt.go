package enum

type SystemPrompt string

const (
	// SystemPromptDetermineIntent 意图分类指令, 标签需与 Intent 常量保持一致
	SystemPromptDetermineIntent SystemPrompt = `Analyze the user message and determine their intent. Supported intents are:
- "troubleshooting": User needs help troubleshooting a device or resolving technical issues
- "warranty": User has questions about warranty coverage
- "return_policy": User wants to know about return policies
- "service": User needs information about service appointments or technicians
- "parts": User is looking for spare parts or replacement components
- "unsupported": The request doesn't fit any of the above categories
Explain your reasoning briefly, then pick exactly one intent.`

	// SystemPromptGenerateResponse 生成回复指令
	SystemPromptGenerateResponse SystemPrompt = `Generate a helpful, friendly but brief response to the user's message in the conversation.
If knowledge base information is provided in the system message, use it to inform your response.
If you don't have sufficient information in the knowledge base, use what's there, then extrapolate plausibly in line with the tone of the knowledge base and conversation.
Be concise and empathetic in your responses.`

	// SystemPromptSupportPersona 会话中没有 system 消息时, 新增的 system 消息前缀
	SystemPromptSupportPersona SystemPrompt = `You are a helpful customer support assistant. Use the following information when answering:`

	// SystemPromptWelcome 新建会话时写入的第一条 system 消息
	SystemPromptWelcome SystemPrompt = `I'm a helpful customer support assistant. How can I help you today?`
)

const (
	KnowledgeContextHeader = "Relevant information from our knowledge base:"
	KnowledgeNotFoundMsg   = "I couldn't find specific information about that in our knowledge base."
)
