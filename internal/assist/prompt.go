package assist

import (
	"fmt"
	"strings"

	"github.com/planwise/planwise/internal/plans"
)

// summarizeTasks renders the plan collection as one line per task for
// inclusion in a prompt.
func summarizeTasks(items []plans.Plan) string {
	if len(items) == 0 {
		return "No tasks available."
	}
	lines := make([]string, 0, len(items))
	for _, p := range items {
		deadline := p.Deadline
		if deadline == "" {
			deadline = "none"
		}
		lines = append(lines, fmt.Sprintf(
			"- %s [priority:%s] [status:%s] [category:%s] [deadline:%s]",
			p.Title, p.Priority, p.Status, p.Category, deadline,
		))
	}
	return strings.Join(lines, "\n")
}

func suggestRequest(items []plans.Plan) Request {
	return Request{
		System: "You help users prioritize tasks with brief, actionable advice.",
		Prompt: fmt.Sprintf(`You are an assistant helping users manage tasks. Analyze the tasks and provide concise suggestions:
- Which tasks are urgent and why
- What to prioritize next (top 3)
- How to schedule them today/tomorrow/this week
Keep it short and bulleted.

Tasks:
%s
`, summarizeTasks(items)),
	}
}

func prioritizeRequest(items []plans.Plan) Request {
	return Request{
		System:   "You prioritize tasks and respond with JSON only.",
		WantJSON: true,
		Prompt: fmt.Sprintf(`You will prioritize tasks into High, Medium, Low. Return JSON with an array "prioritized" where each entry has: id, title, priority (High|Medium|Low), reason.
Return ONLY JSON.

Tasks:
%s
`, summarizeTasks(items)),
	}
}

func dailyPlanRequest(items []plans.Plan, userPrompt string) Request {
	return Request{
		System: "You are a focused daily planner assistant. Be concise and actionable.",
		Prompt: fmt.Sprintf(`Create a concise daily plan based on the user's description and their tasks.
Include time blocks, priorities, and 3 quick tips.
Respond in markdown bullet format.

User description:
%s

Tasks:
%s
`, userPrompt, summarizeTasks(items)),
	}
}
