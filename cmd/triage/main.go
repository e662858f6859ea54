// Triage is a juvenile-justice intake triage workflow engine.
//
// It drives an intake case through interviewing, policy retrieval,
// eligibility determination, risk scoring, and summary synthesis, then
// suspends the case for supervisor review. Suspended cases are
// checkpointed and resumed later with the reviewer's decision.
//
// Usage:
//
//	# Run an interactive intake
//	triage run
//
//	# Run the scripted demonstration case end to end
//	triage demo
//
//	# Apply a review decision to a suspended case
//	triage resume <token> --approve --notes "Concur with plan"
//
//	# Validate configuration and catalog files
//	triage validate --config /path/to/config.yaml
//
//	# Show version information
//	triage version
package main

func main() {
	Execute()
}
