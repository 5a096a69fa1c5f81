package models

import "github.com/julianstephens/ascend/internal/constants"

// TaskDefinition is presentation metadata for one checklist entry. It is
// never persisted; the description for the second workout is derived from
// the current day number.
type TaskDefinition struct {
	Key         string
	Label       string
	Description string
}

// TaskDefinitions returns the checklist entries for the given challenge day,
// in display order. Every HIITInterval-th day the second workout must be a
// high-intensity session.
func TaskDefinitions(day int) []TaskDefinition {
	workout2 := TaskDefinition{
		Key:         TaskWorkout2,
		Label:       "30 Min Workout",
		Description: "Complete your second 30-minute workout",
	}
	if day > 0 && day%constants.HIITInterval == 0 {
		workout2.Description = "Complete a HIIT or high-intensity workout (every 10th day requirement)"
	}

	return []TaskDefinition{
		{
			Key:         TaskWorkout1,
			Label:       "45 Min Workout",
			Description: "Complete your first 45-minute workout",
		},
		workout2,
		{
			Key:         TaskDiet,
			Label:       "Follow Diet Plan",
			Description: "Adhere to your chosen diet with no exceptions",
		},
		{
			Key:         TaskReading,
			Label:       "Read 10 Pages",
			Description: "Read 10 pages of a book (no audiobooks)",
		},
		{
			Key:         TaskSkill,
			Label:       "15 Min Skill Practice",
			Description: "Spend 15 minutes learning a new skill",
		},
		{
			Key:         TaskWater,
			Label:       "Drink 1 Gallon of Water",
			Description: "Drink one gallon (3.8 liters) of water",
		},
		{
			Key:         TaskPhoto,
			Label:       "Take Progress Photo",
			Description: "Take a daily progress photo",
		},
	}
}
