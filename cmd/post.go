package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/poojitha20043/postx/internal/formatter"
	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/shared"
	"github.com/poojitha20043/postx/internal/tasks"
)

// resolveMessage returns the post text, generating it from the --ai prompt
// when no message argument was given.
func (r *Runner) resolveMessage(ctx context.Context, cmd *cli.Command) (string, error) {
	message := cmd.StringArg("message")
	prompt := cmd.String("ai")

	if message != "" {
		return message, nil
	}
	if prompt == "" {
		return "", fmt.Errorf("%w: provide a message or --ai prompt", shared.ErrMissingArgument)
	}

	r.logger.Info("generating post text", "prompt", prompt)
	text, err := r.backendClient(ctx).GenerateCaption(ctx, prompt)
	if err != nil {
		return "", err
	}

	r.writePlain("Generated text:\n%s\n\n", text)
	return text, nil
}

func (r *Runner) publish(ctx context.Context, draft *models.Draft) error {
	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	registry := services.NewRegistry(r.backendClient(ctx))
	composer := tasks.NewComposer(registry, r.history, nil, r.logger)

	record, err := composer.Publish(ctx, userID, draft, nil)
	if err != nil {
		return err
	}

	_, err = r.output.Write(formatter.RecordText(record))
	return err
}

// PostTwitter publishes a tweet.
func (r *Runner) PostTwitter(ctx context.Context, cmd *cli.Command) error {
	message, err := r.resolveMessage(ctx, cmd)
	if err != nil {
		return err
	}

	return r.publish(ctx, &models.Draft{
		Platform: models.Twitter,
		Content:  message,
	})
}

// PostLinkedIn publishes a LinkedIn post.
func (r *Runner) PostLinkedIn(ctx context.Context, cmd *cli.Command) error {
	message, err := r.resolveMessage(ctx, cmd)
	if err != nil {
		return err
	}

	visibility, err := models.ParseVisibility(cmd.String("visibility"))
	if err != nil {
		return err
	}

	return r.publish(ctx, &models.Draft{
		Platform:   models.LinkedIn,
		Content:    message,
		Visibility: visibility,
	})
}

// PostFacebook publishes to a Facebook page, optionally with an image.
func (r *Runner) PostFacebook(ctx context.Context, cmd *cli.Command) error {
	message, err := r.resolveMessage(ctx, cmd)
	if err != nil {
		return err
	}

	return r.publish(ctx, &models.Draft{
		Platform:    models.Facebook,
		Content:     message,
		PageID:      cmd.String("page"),
		MediaPath:   cmd.String("image"),
		ScheduledAt: cmd.String("schedule"),
	})
}

// PostInstagram publishes an Instagram post; the image is required.
func (r *Runner) PostInstagram(ctx context.Context, cmd *cli.Command) error {
	message, err := r.resolveMessage(ctx, cmd)
	if err != nil {
		return err
	}

	return r.publish(ctx, &models.Draft{
		Platform:    models.Instagram,
		Content:     message,
		MediaPath:   cmd.String("image"),
		ScheduledAt: cmd.String("schedule"),
	})
}

// PostGenerate generates post text from a prompt without publishing.
func (r *Runner) PostGenerate(ctx context.Context, cmd *cli.Command) error {
	prompt := cmd.StringArg("prompt")
	if prompt == "" {
		return fmt.Errorf("%w: prompt is required", shared.ErrMissingArgument)
	}

	text, err := r.backendClient(ctx).GenerateCaption(ctx, prompt)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", text)
}

// PostList lists the posts the backend has recorded for the user.
func (r *Runner) PostList(ctx context.Context, cmd *cli.Command) error {
	useCSV := cmd.Bool("csv")
	useJSON := cmd.Bool("json")

	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	posts, err := r.backendClient(ctx).Posts(ctx, userID)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(posts, true)
	}
	if useCSV {
		data, err := formatter.PostHistoryCSV(posts)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	_, err = r.output.Write(formatter.PostHistoryText(posts))
	return err
}
