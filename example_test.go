package canvass_test

import (
	"fmt"
	"log"

	"github.com/dialbird/canvass"
	"github.com/dialbird/canvass/pkg/survey"
)

// ExampleNew demonstrates driving a survey purely as a Go library, defining
// the config with structs instead of loading it from a file.
func ExampleNew() {
	// 1. Define the survey using pure Go structs.
	cfg := &survey.Config{
		Enabled:       true,
		StartQuestion: "satisfied",
		Questions: []survey.Question{
			{
				ID:        "satisfied",
				Type:      survey.TypeYesNo,
				Text:      "Were you satisfied with your appointment?",
				Required:  true,
				NextOnYes: survey.To("rating"),
				NextOnNo:  survey.Terminal(),
			},
			{
				ID:       "rating",
				Type:     survey.TypeRating,
				Text:     "From 1 to 5, how likely are you to recommend us?",
				MinValue: 1,
				MaxValue: 5,
				Next:     survey.Terminal(),
			},
		},
	}

	// 2. New validates the config up front; a broken config never
	// reaches a live call.
	eng, err := canvass.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Start a session and play two turns.
	sess, err := eng.Start("call-demo")
	if err != nil {
		log.Fatal(err)
	}

	for _, utterance := range []string{"yeah", "4"} {
		outcome, err := eng.Submit(sess, utterance)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(outcome.Kind)
	}
	fmt.Println(sess.Status)

	// Output:
	// next
	// complete
	// completed
}

// ExampleEngine_Submit shows how a rejected answer is surfaced: the session
// stays on the same question so the caller can re-prompt.
func ExampleEngine_Submit() {
	cfg := &survey.Config{
		Enabled: true,
		Questions: []survey.Question{
			{
				ID:       "nps",
				Type:     survey.TypeRating,
				Text:     "From 0 to 10, how likely are you to recommend us?",
				MinValue: 0,
				MaxValue: 10,
				Next:     survey.Terminal(),
			},
		},
	}

	eng, err := canvass.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sess, err := eng.Start("call-nps")
	if err != nil {
		log.Fatal(err)
	}

	if _, err := eng.Submit(sess, "eleven"); err != nil {
		if reject, ok := survey.AsAnswerError(err); ok {
			fmt.Println("rejected:", reject.Code)
			fmt.Println("still on:", sess.CurrentQuestionID)
		}
	}

	if _, err := eng.Submit(sess, 9); err != nil {
		log.Fatal(err)
	}
	fmt.Println(sess.Status)

	// Output:
	// rejected: wrong_type
	// still on: nps
	// completed
}
