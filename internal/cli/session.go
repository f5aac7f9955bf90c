package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ListSessions prints every stored session id.
func ListSessions(opts RunOptions) error {
	logger := createLogger(opts.Debug, false)
	manager, err := setupPersistence(opts, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ids, err := manager.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

// ShowSession prints one session as indented JSON.
func ShowSession(opts RunOptions, sessionID string) error {
	logger := createLogger(opts.Debug, false)
	manager, err := setupPersistence(opts, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := manager.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// ResetSession deletes a stored session.
func ResetSession(opts RunOptions, sessionID string) error {
	logger := createLogger(opts.Debug, false)
	manager, err := setupPersistence(opts, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := manager.Delete(ctx, sessionID); err != nil {
		return err
	}
	fmt.Printf("Session %q deleted.\n", sessionID)
	return nil
}
