package generator

import (
	"fmt"

	"github.com/ByLCY/bingo/extract"
)

const wordSystemPrompt = `You are an expert word list generator for a Bingo game.
Your task is to generate a comma-separated list of EXACTLY %d words or phrases based on the user's topic.
CRITICAL: ONLY return the list of words/phrases. DO NOT include any conversation, titles (e.g. 'Here is the list:'), explanations, numbering (e.g. 1., 2.), or newlines.
The output MUST be in the same language as the user's request.
Example of correct output: 'apple, banana, cherry, durian, mango, ...'`

const qaSystemPrompt = `You are an expert quiz writer for a Bingo game.
Your task is to generate a comma-separated list of EXACTLY %d question:answer pairs based on the user's topic.
Each pair is written as question:answer with a single colon. Answers must be short (one to three words) and distinct from each other.
CRITICAL: ONLY return the list. DO NOT include any conversation, titles, explanations, numbering (e.g. 1., 2.), or newlines. Do not use commas or colons inside a question or an answer.
The output MUST be in the same language as the user's request.
Example of correct output: 'What is 2+2?:4, Largest planet?:Jupiter, ...'`

// Prompts returns the system and user prompt for a request.
func Prompts(mode extract.Mode, topic string, count int) (system, user string) {
	if mode == extract.ModeQA {
		return fmt.Sprintf(qaSystemPrompt, count),
			fmt.Sprintf("Generate %d question:answer pairs for the topic: '%s'", count, topic)
	}
	return fmt.Sprintf(wordSystemPrompt, count),
		fmt.Sprintf("Generate %d words/phrases for the topic: '%s'", count, topic)
}
