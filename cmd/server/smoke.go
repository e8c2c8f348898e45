package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dom/qna-service/internal/client"
	"github.com/dom/qna-service/internal/domain"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func NewSmokeCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Exercise a running server end to end",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			return runSmoke(ctx, client.New(baseURL), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:42001", "server to test")

	return cmd
}

func runSmoke(ctx context.Context, c *client.Client, out io.Writer) error {
	step := func(name string, err error) error {
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
			return oops.Code("SMOKE_FAILED").With("step", name).Wrap(err)
		}
		fmt.Fprintf(out, "ok   %s\n", name)
		return nil
	}

	creds := domain.Credentials{
		Email:    fmt.Sprintf("smoke_%d@example.com", time.Now().UnixNano()),
		Password: "smoke-test-password",
	}
	if err := step("register", c.Register(ctx, creds)); err != nil {
		return err
	}
	_, err := c.Login(ctx, creds)
	if err := step("login", err); err != nil {
		return err
	}
	if err := step("healthcheck", c.Health(ctx)); err != nil {
		return err
	}

	q, err := c.AddQuestion(ctx, domain.NewQuestion{
		Title:   "Smoke test",
		Content: "Does the server work?",
		Tags:    []string{"smoke"},
	})
	if err := step("add question", err); err != nil {
		return err
	}

	_, err = c.ListQuestions(ctx, domain.DefaultPagination())
	if err := step("list questions", err); err != nil {
		return err
	}

	_, err = c.AddAnswer(ctx, domain.NewAnswer{Content: "It does.", QuestionID: q.ID})
	if err := step("add answer", err); err != nil {
		return err
	}

	answers, err := c.ListAnswers(ctx, q.ID)
	if err == nil && len(answers) != 1 {
		err = fmt.Errorf("expected 1 answer, got %d", len(answers))
	}
	if err := step("list answers", err); err != nil {
		return err
	}

	return step("delete question", c.DeleteQuestion(ctx, q.ID))
}
