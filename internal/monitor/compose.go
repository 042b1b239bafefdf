package monitor

import (
	"fmt"
	"strconv"
)

// positionBody reports the current and previous positions. prev is nil when
// no position has ever been recorded; it renders as "None".
func positionBody(current, total int, prev *int, joined, maxPrefix, minPrefix, timeChecked string) string {
	prevText := "None"
	if prev != nil {
		prevText = strconv.Itoa(*prev)
	}
	return fmt.Sprintf(
		"Your current ARIN IPv4 waiting list position is:\n"+
			"%d/%d.\n\n"+
			"Your last position was:\n"+
			"%s/%d.\n\n"+
			"You joined the waitlist on:\n"+
			"%s\n\n"+
			"Max Prefix: %s | Min Prefix: %s\n\n"+
			"Time Checked:\n"+
			"%s\n",
		current, total, prevText, total, joined, maxPrefix, minPrefix, timeChecked,
	)
}

func notFoundBody(target string, total int, timeChecked string) string {
	return fmt.Sprintf(
		"Could not find your entry in the ARIN waiting list table.\n\n"+
			"Target timestamp:\n%s\n\n"+
			"Rows parsed:\n%d\n\n"+
			"Time Checked:\n%s\n",
		target, total, timeChecked,
	)
}

func errorBody(err error, timeChecked string) string {
	return fmt.Sprintf(
		"Error while checking ARIN waiting list:\n%v\n\n"+
			"Time Checked:\n%s\n",
		err, timeChecked,
	)
}
