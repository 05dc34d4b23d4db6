// Package availability computes bookable offers from a weekly availability
// template, calendar busy intervals, a lead-time rule and optional container
// events.
//
// Every function here is a pure function of its arguments: the evaluation
// instant, the schedule and the lead time are always passed in, nothing is
// cached between calls and nothing is logged.
package availability
