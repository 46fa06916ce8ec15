package main

import (
	"context"
	"fmt"
	"os"

	"github.com/comalice/storex/devtools"
	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/extensibility"
	"github.com/comalice/storex/internal/primitives"
	"github.com/comalice/storex/internal/production"
)

func main() {
	config := primitives.NewConfigBuilder("counter").
		Field("count", 0).Bounds(0, 15).
		Action("ADD").Add("count", 5).
		Action("SUBTRACT").Subtract("count", 5).
		Action("RESET").Set("count", 0).
		Build()

	persister, err := production.NewJSONPersister(os.TempDir())
	if err != nil {
		panic(err)
	}

	publishChan := make(chan production.PublishedAction, 100)
	publisher := production.NewChannelPublisher(publishChan)

	registry := production.NewMemoryRegistry()

	store, err := core.NewStore(config,
		core.WithGuardEvaluator(extensibility.NewExprGuardEvaluator()),
		core.WithPersister(persister),
		core.WithPublisher(publisher),
		core.WithRegistry(registry),
	)
	if err != nil {
		panic(err)
	}

	rec := devtools.NewRecorder(store)
	ctx := context.Background()
	initial := store.GetState()

	fmt.Println("storex demo: bounded counter")
	fmt.Printf("initial state: count=%v\n", initial["count"])

	scenario := []string{"ADD", "ADD", "SUBTRACT", "RESET", "ADD", "ADD", "ADD", "ADD"}
	for i, actionType := range scenario {
		rec.Dispatch(ctx, primitives.NewAction(actionType, nil))
		fmt.Printf("\n--- Step %d ---\n", i+1)
		fmt.Printf("dispatched %s, count=%v\n", actionType, store.GetState()["count"])

		// Demo publish consumption
		select {
		case published := <-publishChan:
			fmt.Printf("published: %s (seq=%d)\n", published.Action.Type, published.Metadata.Seq)
		default:
		}
	}

	version, err := store.Checkpoint(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\ncheckpointed version %s\n", version)

	if err := store.Save(ctx); err != nil {
		panic(err)
	}
	fmt.Println("snapshot saved to", os.TempDir())

	replayed, err := devtools.Replay(ctx, config, rec.Journal(),
		core.WithGuardEvaluator(extensibility.NewExprGuardEvaluator()))
	if err != nil {
		panic(err)
	}
	fmt.Printf("replayed final state: count=%v\n", replayed["count"])

	fmt.Println("\ntimeline DOT:")
	fmt.Println(devtools.ExportDOT("counter", initial, rec.Journal()))
}
