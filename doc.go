/*
Package canvass is the survey branching engine behind an AI voice-calling
platform. It decides, turn by turn, what a phone agent asks next: a graph of
typed questions with conditional transitions (yes/no branches, branch by
option, branch by rating range, linear flow for open-ended questions),
validated against structural invariants before a config ever takes live
traffic.

The dashboard that authors surveys and the telephony stack that carries
audio are external collaborators. They meet here: the editor produces a
survey.Config, canvass validates it, and the call-handling runtime drives
each conversation through Engine.Submit.

# Concept

The core is three pure functions over an immutable config snapshot:
survey.Validate checks the graph, survey.ValidateAnswer normalizes a
respondent utterance, and survey.Advance maps (question, answer) to the next
question or a terminal outcome. Everything mutable lives in survey.Session,
one per active call, owned by that call alone.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/dialbird/canvass"
		"github.com/dialbird/canvass/pkg/survey"
	)

	func main() {
		cfg, err := survey.LoadFile("survey.json")
		if err != nil {
			log.Fatal(err)
		}

		eng, err := canvass.New(cfg)
		if err != nil {
			log.Fatal(err) // config has violations, fix them in the editor
		}

		sess, err := eng.Start("call-123")
		if err != nil {
			log.Fatal(err)
		}

		for sess.Status == survey.StatusInProgress {
			q := eng.Question(sess.CurrentQuestionID)
			fmt.Println(q.Text)

			// In a real deployment this comes from the transcription layer.
			outcome, err := eng.Submit(sess, "yes")
			if err != nil {
				fmt.Println("please answer again:", err)
				continue
			}
			if outcome.Kind == survey.OutcomeComplete {
				fmt.Println(cfg.CompletionMessage)
			}
		}
	}
*/
package canvass
