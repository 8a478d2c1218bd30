package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dawang/internal/catalog"
	"dawang/internal/chatmsg"
	"dawang/internal/pipeline"
	"dawang/internal/selection"
)

var (
	askDepartment string
	askProgram    string
	askType       string
)

// askCmd sends one question through a chat session
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask 다왕이 a single question",
	Long: `Sends one question through a chat session, exactly as the interactive
interface would, and prints the answer and the mascot's mood.

Example:
  dawang ask --department 경영학부 --program 위기관리 "졸업요건이 어떻게 되나요?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askDepartment, "department", "", "Home department")
	askCmd.Flags().StringVar(&askProgram, "program", "", "Target program display name")
	askCmd.Flags().StringVar(&askType, "type", "", "Program type (융합전공)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := joinArgs(args)
	if question == "" {
		return errors.New("question is empty")
	}

	sel := selection.NewStore()
	sel.SetProgramType(askType)
	sel.SetDepartment(askDepartment)
	sel.SetProgram(askProgram)

	programName := ""
	if id, ok := catalog.LookupProgram(askProgram); ok {
		programName = string(id)
	}

	timer := newTimer()
	defer timer.Stop()

	s := pipeline.New(pipeline.Deps{
		Answerer:    newClient(),
		Selection:   sel,
		Mood:        timer,
		ProgramName: programName,
	})
	defer s.Close()

	logger.Debug("Asking", zap.String("question", question), zap.String("department", askDepartment), zap.String("program", askProgram))

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetServiceTimeout())
	defer cancel()
	s.Send(ctx, question)

	logger.Debug("Asked", zap.String("session_id", s.RemoteSessionID()), zap.String("mood", string(timer.Current())))

	msgs := s.Messages()
	reply := msgs[len(msgs)-1]
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, reply.Content)
	if reply.Label != chatmsg.LabelNone {
		fmt.Fprintf(out, "\n[label: %s]", reply.Label)
	}
	fmt.Fprintf(out, "\n[mood: %s]\n", timer.Current())

	if reply.Content == pipeline.ApologyText {
		return errors.New("advisory service request failed")
	}
	return nil
}
