// Package grading evaluates a trainee's audiogram and technique.
//
// It provides three capabilities:
//
//   - [Grade] compares marked thresholds with the patient's latent
//     thresholds and scores them as a percentage, where 100 means every
//     mark matched and 0 means the marks were off by 100 dB or more on
//     average. [Summarize] formats one ear's marks for display.
//
//   - [Adherence] replays a session through the staircase engine and
//     counts how many presentations used the recommended intensity.
//
//   - [EstimateBias] runs the procedure against a simulated patient many
//     times to measure how far established thresholds land from the
//     latent threshold.
//
// # Usage
//
//	entries := append(c.Entries(audiometry.Left), c.Entries(audiometry.Right)...)
//	report, err := grading.Grade(entries, c.Profile())
//	fmt.Println(report.Accuracy, grading.Summarize(c.Entries(audiometry.Left)))
package grading
