package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/vapi"
)

const (
	PromptAddQuestion = "Add a question"
	PromptDone        = "Done"
)

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Manage voice interview assistants",
}

var assistantCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a voice interview assistant at the provider",
	Run: func(cmd *cobra.Command, _ []string) {
		createAssistant(cmd)
	},
}

func init() {
	rootCmd.AddCommand(assistantCmd)
	assistantCmd.AddCommand(assistantCreateCmd)

	assistantCreateCmd.Flags().StringP("candidate", "c", "", "candidate name (prompted when empty)")
	assistantCreateCmd.Flags().StringArrayP("question", "q", nil, "interview question, repeatable (prompted when empty)")
}

func createAssistant(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	candidate, _ := cmd.Flags().GetString("candidate")
	questions, _ := cmd.Flags().GetStringArray("question")

	if strings.TrimSpace(candidate) == "" {
		candidate, err = promptCandidate()
		if err != nil {
			logger.Fatal("reading candidate name", zap.Error(err))
		}
	}
	if len(questions) == 0 {
		questions, err = promptQuestions()
		if err != nil {
			logger.Fatal("reading questions", zap.Error(err))
		}
	}

	privateKey, err := config.Vapi.privateKey()
	if err != nil {
		logger.Fatal("loading vapi private key", zap.Error(err))
	}

	client := vapi.New(logger, privateKey)
	if config.Vapi.APIURL != "" {
		client.APIURL = config.Vapi.APIURL
	}

	assistant, err := vapi.NewProvisioner(client, privateKey, config.Vapi.Assistant, logger).
		Create(cmd.Context(), candidate, questions)
	if err != nil {
		logger.Fatal("creating assistant", zap.Error(err))
	}

	fmt.Printf("assistant id: %s\nassistant name: %s\n", assistant.ID, assistant.Name)
}

func promptCandidate() (string, error) {
	p := promptui.Prompt{
		Label: "Candidate name",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("candidate name is required")
			}
			return nil
		},
	}
	name, err := p.Run()
	return strings.TrimSpace(name), err
}

// promptQuestions collects questions until the user picks Done.
func promptQuestions() ([]string, error) {
	var questions []string

	for {
		menu := promptui.Select{
			Label: fmt.Sprintf("Questions so far: %d", len(questions)),
			Items: []string{PromptAddQuestion, PromptDone},
		}

		_, action, err := menu.Run()
		if err != nil {
			return nil, err
		}
		if action == PromptDone {
			return questions, nil
		}

		q := promptui.Prompt{Label: fmt.Sprintf("Question %d", len(questions)+1)}
		question, err := q.Run()
		if err != nil {
			return nil, err
		}
		if question = strings.TrimSpace(question); question != "" {
			questions = append(questions, question)
		}
	}
}
