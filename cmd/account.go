package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/poojitha20043/postx/internal/formatter"
	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/server"
	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/shared"
	"github.com/poojitha20043/postx/internal/tasks"
)

// AccountStatus checks every platform concurrently and renders the results.
//
// A platform whose live check fails falls back to the cached snapshot and is
// marked as such; the command itself only fails before any network traffic.
func (r *Runner) AccountStatus(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	registry := services.NewRegistry(r.backendClient(ctx))
	engine := tasks.NewStatusEngine(registry, r.cache, tasks.StatusEngineOpts{Logger: r.logger})

	statuses, err := engine.CheckAll(ctx, userID, nil)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(statuses, true)
	}

	_, err = r.output.Write(formatter.StatusLines(statuses))
	return err
}

// AccountConnect runs the browser authorization flow for one platform.
//
// A loopback server receives the backend's redirect; the parsed account is
// cached so the dashboard can show it even when later checks fail.
func (r *Runner) AccountConnect(ctx context.Context, cmd *cli.Command) error {
	platform, err := models.ParsePlatform(cmd.StringArg("platform"))
	if err != nil {
		return err
	}

	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	registry := services.NewRegistry(r.backendClient(ctx))
	connector, err := registry.Get(platform)
	if err != nil {
		return err
	}

	handler := server.NewCallbackHandler(platform)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(handler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting callback server for %s at %v", platform, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	authURL := connector.AuthURL(userID)
	r.writePlain("→ Opening browser to connect %s...\n", platform.DisplayName())
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Account == nil {
		return fmt.Errorf("no account received")
	}

	if err := r.cache.Put(result.Account); err != nil {
		r.logger.Warnf("failed to cache %s account: %v", platform, err)
	}

	r.writePlainln("✓ %s connected", platform.DisplayName())
	if result.Account.Username != "" {
		r.writePlain("Account: @%s\n", result.Account.Username)
	} else if result.Account.Name != "" {
		r.writePlain("Account: %s\n", result.Account.Name)
	}
	return nil
}

// AccountDisconnect removes a platform link after confirmation.
//
// The cached snapshot is cleared before the backend call; a backend failure
// leaves the cache cleared since the next status check repopulates it.
func (r *Runner) AccountDisconnect(ctx context.Context, cmd *cli.Command) error {
	platform, err := models.ParsePlatform(cmd.StringArg("platform"))
	if err != nil {
		return err
	}

	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		r.writePlain("Disconnect %s? [y/N] ", platform.DisplayName())
		reader := bufio.NewReader(r.input)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return r.writePlain("Cancelled.\n")
		}
	}

	if err := r.cache.Remove(platform); err != nil {
		r.logger.Warnf("failed to drop cached %s account: %v", platform, err)
	}

	registry := services.NewRegistry(r.backendClient(ctx))
	connector, err := registry.Get(platform)
	if err != nil {
		return err
	}

	if err := connector.Disconnect(ctx, userID); err != nil {
		return err
	}

	return r.writePlain("✓ %s disconnected\n", platform.DisplayName())
}

// AccountPages lists the Facebook pages available for posting.
func (r *Runner) AccountPages(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	facebook := services.NewFacebookConnector(r.backendClient(ctx))
	pages, err := facebook.Pages(ctx, userID)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(pages, true)
	}

	_, err = r.output.Write(formatter.PagesText(pages))
	return err
}

// AccountMetrics shows engagement metrics for a Facebook page.
func (r *Runner) AccountMetrics(ctx context.Context, cmd *cli.Command) error {
	pageID := cmd.String("page")
	useJSON := cmd.Bool("json")

	if _, err := r.requireUserID(); err != nil {
		return err
	}

	facebook := services.NewFacebookConnector(r.backendClient(ctx))
	metrics, err := facebook.Metrics(ctx, pageID)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(metrics, true)
	}

	_, err = r.output.Write(formatter.MetricsText(metrics))
	return err
}

// AccountInstagramMetrics shows Instagram account metrics.
func (r *Runner) AccountInstagramMetrics(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	instagram := services.NewInstagramConnector(r.backendClient(ctx))
	account, metrics, err := instagram.Metrics(ctx, userID)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(map[string]any{"account": account, "metrics": metrics}, true)
	}

	if account != nil && account.Username != "" {
		r.writePlain("@%s\n\n", account.Username)
	}
	_, err = r.output.Write(formatter.MetricsText(metrics))
	return err
}
