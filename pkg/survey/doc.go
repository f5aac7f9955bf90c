/*
Package survey defines the question graph that drives AI-conducted phone
surveys, together with the pure functions a call-handling runtime needs:
validating a graph before it goes live, validating a respondent's answer
against the question it answers, and deciding which question the agent asks
next.

A SurveyConfig is an immutable snapshot: the editor produces it, Validate
checks it, and a live call only reads it. Per-call mutable state lives in
Session, which is advanced exclusively through Advance outcomes.

# Key Types

  - Question: one node in the graph, typed yes_no, multiple_choice, rating
    or open_ended, with its transition fields.
  - Config: the whole graph plus session-level behavior (start question,
    terminal messages, skip policy).
  - Answer: a normalized, type-correct representation of respondent input.
  - Outcome: Next(id), Complete or Abort.
  - Session: per-call state machine (not_started -> in_progress ->
    completed/abandoned).
*/
package survey
