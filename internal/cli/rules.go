package cli

import (
	"fmt"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

type RulesCmd struct{}

func (c *RulesCmd) Run(ctx *Context) error {
	fmt.Printf("THE %d ASCEND RULES\n\n", constants.ChallengeLength)
	fmt.Printf("Complete all seven tasks every day for %d days straight.\n", constants.ChallengeLength)
	fmt.Println("Miss a single task and the attempt is over: reset and start again at day 1.")
	fmt.Println()

	for i, def := range models.TaskDefinitions(1) {
		fmt.Printf("  %d. %s\n     %s\n", i+1, def.Label, def.Description)
	}

	fmt.Println()
	fmt.Printf("Every %dth day the second workout must be a HIIT or other high-intensity session.\n", constants.HIITInterval)
	fmt.Println("No substitutions, no partial credit, no zero days.")
	return nil
}
