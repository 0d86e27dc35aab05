package service

import "fmt"

// System prompts for the free-chat modes.
const (
	chatShortSystemPrompt    = "You are Aura AI. Provide concise, to-the-point answers."
	chatDetailedSystemPrompt = "You are Aura AI. Provide detailed, step-by-step explanations. Format code properly."

	pdfChatSystemPrompt = "You are Aura AI, a study assistant. Answer questions based on the provided PDF context. If the question isn't covered in the context, say so and provide general information."

	questionsSystemPrompt     = "You are an expert question generator. Create clear, educational questions with accurate answers."
	summarySystemPrompt       = "You are a summarization expert. Create clear, accurate summaries."
	notesSystemPrompt         = "You are a study notes expert. Create organized, easy-to-understand notes."
	questionPaperSystemPrompt = "You are an expert exam paper setter. Create professional, balanced question papers."
	explainSystemPrompt       = "You are an expert educator. Adapt your explanation to the requested level."
)

// ChatSystemPrompt selects the chat instruction for the requested mode.
func ChatSystemPrompt(mode string) string {
	if mode == "short" {
		return chatShortSystemPrompt
	}
	return chatDetailedSystemPrompt
}

// PDFChatSystemPrompt grounds answers in uploaded-document context.
func PDFChatSystemPrompt() string {
	return pdfChatSystemPrompt
}

// QuestionsPrompt builds the question-generation prompt and instruction.
func QuestionsPrompt(topics, questionType string, count int) (prompt, system string) {
	prompt = fmt.Sprintf("Generate %d %s questions", count, questionType)
	if topics != "" {
		prompt += fmt.Sprintf(" on the following topics: %s", topics)
	}
	prompt += ". Include answers for each question."
	return prompt, questionsSystemPrompt
}

var summaryLengthPrompts = map[string]string{
	"short":    "Provide a very brief summary (2-3 sentences)",
	"medium":   "Provide a concise summary (1 paragraph)",
	"detailed": "Provide a comprehensive summary with key points",
}

// SummaryPrompt builds the summarization prompt for the requested length.
func SummaryPrompt(text, length string) (prompt, system string) {
	instruction, ok := summaryLengthPrompts[length]
	if !ok {
		instruction = summaryLengthPrompts["medium"]
	}
	return fmt.Sprintf("%s of the following text:\n\n%s", instruction, text), summarySystemPrompt
}

var notesFormatPrompts = map[string]string{
	"structured": "Organize notes with headings, bullet points, and key terms",
	"outline":    "Create an outline format with main topics and subtopics",
	"detailed":   "Create detailed notes with explanations and examples",
}

// NotesPrompt builds the note-generation prompt for the requested format.
func NotesPrompt(text, format string) (prompt, system string) {
	instruction, ok := notesFormatPrompts[format]
	if !ok {
		instruction = notesFormatPrompts["structured"]
	}
	return fmt.Sprintf("Create study notes from the following text. %s:\n\n%s", instruction, text), notesSystemPrompt
}

// QuestionPaperPrompt builds the exam-paper prompt.
func QuestionPaperPrompt(topics, difficulty, marks, duration string) (prompt, system string) {
	prompt = fmt.Sprintf(`Generate a complete question paper with:
Topics: %s
Difficulty Level: %s
Total Marks: %s
Duration: %s

Include:
1. Instructions
2. Section-wise questions
3. Mark distribution
4. Answer key if possible

Make it look professional and exam-ready.`, topics, difficulty, marks, duration)
	return prompt, questionPaperSystemPrompt
}

var explainLevelPrompts = map[string]string{
	"beginner":     "Explain like I'm 10 years old. Use simple language and analogies.",
	"intermediate": "Explain for a high school student. Include examples.",
	"expert":       "Provide an in-depth, technical explanation.",
}

// ExplainPrompt builds the concept-explanation prompt for the requested level.
func ExplainPrompt(concept, level string) (prompt, system string) {
	instruction, ok := explainLevelPrompts[level]
	if !ok {
		instruction = explainLevelPrompts["intermediate"]
	}
	return fmt.Sprintf("%s\n\nConcept: %s", instruction, concept), explainSystemPrompt
}

var materialPrompts = map[string]string{
	"notes":               "Generate comprehensive study notes from this text. Organize by topics, highlight key points, and include definitions. Text: %s",
	"summary":             "Create a concise summary of this text. Include main ideas and key takeaways. Text: %s",
	"questions":           "Generate 10 important questions from this text with answers. Text: %s",
	"mcq":                 "Generate 15 multiple choice questions from this text with 4 options each and mark correct answer. Text: %s",
	"long_answers":        "Generate 5 long answer questions from this text with detailed answers. Text: %s",
	"important_questions": "Identify and list the 10 most important questions that could be asked from this text. Text: %s",
}

var materialSystemPrompts = map[string]string{
	"notes":               "You are a study notes expert. Create well-structured, easy-to-understand notes.",
	"summary":             "You are a summarization expert. Create clear, concise summaries.",
	"questions":           "You are an exam preparation expert. Generate relevant questions.",
	"mcq":                 "You are a quiz creator. Generate meaningful multiple choice questions.",
	"long_answers":        "You are an academic expert. Generate comprehensive long answer questions.",
	"important_questions": "You are an exam predictor. Identify the most important questions.",
}

// StudyMaterialPrompt builds the prompt pair for generating study material
// from a stored document's text. Unknown types fall back to notes.
func StudyMaterialPrompt(text, materialType string) (prompt, system string) {
	template, ok := materialPrompts[materialType]
	if !ok {
		template = materialPrompts["notes"]
	}
	system, ok = materialSystemPrompts[materialType]
	if !ok {
		system = materialSystemPrompts["notes"]
	}
	return fmt.Sprintf(template, text), system
}
