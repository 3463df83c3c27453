package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// watchFiles reruns fn whenever one of paths is written, created or renamed.
// Parent directories are watched so editors that replace files are seen.
func watchFiles(ctx context.Context, logger *slog.Logger, paths []string, fn func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	logger.Info("formschema: watching for changes", slog.Int("files", len(targets)))

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, tracked := targets[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("formschema: change detected", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("formschema: watcher error", slog.Any("err", err))
		case <-timer.C:
			if err := fn(ctx); err != nil {
				logger.Error("formschema: conversion failed", slog.Any("err", err))
				continue
			}
			logger.Info("formschema: regenerated")
		}
	}
}
