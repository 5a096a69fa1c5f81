// Package quotes holds the motivational quote pool shown on day-completion
// cards.
package quotes

import "math/rand"

// Quote is a single attributed quote.
type Quote struct {
	Text   string
	Author string
}

var pool = []Quote{
	{"Discipline equals freedom.", "Jocko Willink"},
	{"We are what we repeatedly do. Excellence, then, is not an act, but a habit.", "Will Durant"},
	{"The pain of discipline weighs ounces; the pain of regret weighs tons.", "Jim Rohn"},
	{"Don't count the days, make the days count.", "Muhammad Ali"},
	{"Success is the sum of small efforts, repeated day in and day out.", "Robert Collier"},
	{"Hard choices, easy life. Easy choices, hard life.", "Jerzy Gregorek"},
	{"You do not rise to the level of your goals. You fall to the level of your systems.", "James Clear"},
	{"It always seems impossible until it's done.", "Nelson Mandela"},
	{"Motivation gets you going, but discipline keeps you growing.", "John C. Maxwell"},
	{"The only bad workout is the one that didn't happen.", "Unknown"},
	{"Strength does not come from winning. Your struggles develop your strengths.", "Arnold Schwarzenegger"},
	{"Whether you think you can or you think you can't, you're right.", "Henry Ford"},
}

// Random returns a random quote from the pool.
func Random() Quote {
	return pool[rand.Intn(len(pool))]
}

// All returns the full quote pool.
func All() []Quote {
	out := make([]Quote, len(pool))
	copy(out, pool)
	return out
}
