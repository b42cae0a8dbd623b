package tutor

// systemInstruction is sent as the first message of every completion request
const systemInstruction = `I want you to act as a friendly AI tutor.
When I ask a question, you should:

Give clear and simple answers
Break down complex ideas into small steps
Use examples or analogies when possible
Correct my factual mistakes politely
Provide complete, well-commented code if the question is about programming
No word limit is required.`

const (
	minQuestionLength = 3

	MsgNeedMoreDetail  = "Please enter a detailed question to get help!"
	MsgCredentialError = "**API Key Error**: Please check your API key and try again."
	MsgQuotaExceeded   = "⚠️ **Quota Exceeded**: You've reached your API usage limit. Please try again later."
	MsgRateLimited     = "**Rate Limited**: Too many requests. Please wait a moment and try again."

	msgUnclassifiedFormat = "**Error**: %s\n\n💡 Please try rephrasing your question or check your internet connection."
)
