package usecase

import (
	"fmt"
	"strings"

	"antisocial-agent/internal/domain"
)

func topicHashtag(topic string) string {
	return "#" + strings.ReplaceAll(topic, " ", "")
}

func blueprint(hook, cta string, points ...string) domain.Blueprint {
	return domain.Blueprint{Hook: hook, Outline: domain.OutlinePoints(points...), CTA: cta}
}

func linkedInFallback(topic string) domain.ContentPlan {
	return domain.ContentPlan{
		TrendingAngles: []string{
			fmt.Sprintf("Professional insights about %s", topic),
			fmt.Sprintf("Career opportunities in %s", topic),
			fmt.Sprintf("Industry trends related to %s", topic),
			fmt.Sprintf("Business applications of %s", topic),
			fmt.Sprintf("Professional development through %s", topic),
		},
		Hashtags: []string{"#LinkedIn", "#Professional", "#Career", "#Industry", "#Business", topicHashtag(topic)},
		PostBlueprints: []domain.Blueprint{
			blueprint(
				fmt.Sprintf("Here's what professionals need to know about %s...", topic),
				"What's your experience with this? Share your thoughts in the comments.",
				fmt.Sprintf("Key professional insight about %s", topic),
				"Industry impact and opportunities",
				"Actionable advice for career growth",
				"Real-world applications in business",
			),
			blueprint(
				fmt.Sprintf("3 career lessons I learned from %s:", topic),
				"Which lesson resonates most with you? Let me know below.",
				fmt.Sprintf("Lesson 1: Strategic thinking about %s", topic),
				fmt.Sprintf("Lesson 2: Leadership opportunities in %s", topic),
				fmt.Sprintf("Lesson 3: Network building through %s", topic),
				"How to apply these in your career",
			),
			blueprint(
				fmt.Sprintf("The future of %s in professional settings:", topic),
				"How are you preparing for these changes? Share your strategy.",
				fmt.Sprintf("Current state of %s in business", topic),
				"Emerging trends and opportunities",
				"Skills professionals need to develop",
				"Action steps for career preparation",
			),
		},
	}
}

func instagramFallback(topic string) domain.ContentPlan {
	return domain.ContentPlan{
		TrendingAngles: []string{
			fmt.Sprintf("Behind the scenes of %s", topic),
			fmt.Sprintf("Daily life with %s", topic),
			fmt.Sprintf("Visual guide to %s", topic),
			fmt.Sprintf("Before and after with %s", topic),
			fmt.Sprintf("Aesthetic %s inspiration", topic),
		},
		Hashtags: []string{"#Instagram", "#Visual", "#Lifestyle", "#Aesthetic", "#Daily", topicHashtag(topic), "#Inspiration"},
		PostBlueprints: []domain.Blueprint{
			blueprint(
				fmt.Sprintf("This %s moment caught my attention...", topic),
				"Save this for later! What's your experience with this? ✨",
				fmt.Sprintf("Visual story about %s", topic),
				fmt.Sprintf("Personal connection to %s", topic),
				"Lifestyle integration tips",
				"Community inspiration",
			),
			blueprint(
				fmt.Sprintf("Step-by-step %s tutorial 📖", topic),
				"Try this and tag me in your results! 🙌",
				fmt.Sprintf("Step 1: Getting started with %s", topic),
				fmt.Sprintf("Step 2: The key technique for %s", topic),
				fmt.Sprintf("Step 3: Pro tips for %s", topic),
				"Final result and celebration",
			),
			blueprint(
				fmt.Sprintf("Before vs After: My %s journey", topic),
				"What's your transformation story? Share below! 💫",
				fmt.Sprintf("Where I started with %s", topic),
				"The transformation process",
				"Key moments and breakthroughs",
				"Current results and future goals",
			),
			blueprint(
				fmt.Sprintf("Aesthetic %s inspiration for your feed ✨", topic),
				"Which style speaks to you? Save for inspo! 📌",
				fmt.Sprintf("Color palette ideas for %s", topic),
				"Styling tips and arrangements",
				"Photography angles and lighting",
				"Creating cohesive visual story",
			),
		},
	}
}

// twitterFallback is also used for platforms without a profile of their own.
func twitterFallback(topic string) domain.ContentPlan {
	return domain.ContentPlan{
		TrendingAngles: []string{
			fmt.Sprintf("Hot take on %s", topic),
			fmt.Sprintf("Thread about %s insights", topic),
			fmt.Sprintf("Quick %s tips", topic),
			fmt.Sprintf("Discussion starter about %s", topic),
			fmt.Sprintf("Real-time %s observations", topic),
		},
		Hashtags: []string{"#Twitter", "#Thread", "#Discussion", topicHashtag(topic), "#Insights"},
		PostBlueprints: []domain.Blueprint{
			blueprint(
				fmt.Sprintf("Unpopular opinion about %s... 🧵", topic),
				"What's your take? Reply with your thoughts 👇",
				fmt.Sprintf("Main point about %s", topic),
				"Supporting evidence or example",
				"Why this matters now",
				"Call for community discussion",
			),
			blueprint(
				fmt.Sprintf("Quick thread: 5 things about %s that changed my perspective", topic),
				"Which one surprised you most? RT if helpful! 🔄",
				fmt.Sprintf("Thing 1: Surprising insight about %s", topic),
				"Thing 2: Common misconception debunked",
				"Thing 3: Practical application tip",
				"Thing 4: Future implications",
				"Thing 5: Key takeaway for everyone",
			),
			blueprint(
				fmt.Sprintf("Let's discuss: What's your experience with %s?", topic),
				"Share your story in the replies - let's learn together! 💬",
				fmt.Sprintf("My personal experience with %s", topic),
				"What I've learned from others",
				"Common challenges people face",
				"Question for the community",
			),
			blueprint(
				fmt.Sprintf("Educational thread: Everything you need to know about %s 📚", topic),
				"Bookmark this thread! Share with someone who needs to see it 🔖",
				fmt.Sprintf("Basic definition and importance of %s", topic),
				"Key concepts everyone should understand",
				"Common mistakes to avoid",
				"Resources for learning more",
				"Action steps to get started",
			),
			blueprint(
				fmt.Sprintf("Real talk about %s - here's what nobody tells you:", topic),
				"Agree or disagree? Let's have an honest conversation 🗣️",
				fmt.Sprintf("The reality behind %s", topic),
				"What the experts don't mention",
				"Hidden challenges and solutions",
				"Honest advice from experience",
			),
		},
	}
}
