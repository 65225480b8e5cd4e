// Command play runs a local round of the game in the terminal, talking
// straight to the engine with an in-memory session store. Useful for
// poking at the similarity service without a chat platform in the loop.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/okian/sema/internal/adapters/similarity"
	"github.com/okian/sema/internal/adapters/store"
	"github.com/okian/sema/internal/app"
	"github.com/okian/sema/internal/domain/words"
	"github.com/okian/sema/pkg/logger"
)

func main() {
	var (
		wordsPath = flag.String("words", "secretwords.json", "path to the secret word list")
		baseURL   = flag.String("base-url", "http://semantle.com", "similarity service base URL")
		author    = flag.String("author", "player", "name guesses are attributed to")
		seed      = flag.Int64("seed", 0, "fixed word-draw seed (0 = random)")
		timeout   = flag.Duration("timeout", 5*time.Second, "similarity lookup timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	_ = logger.SetLevelString("warn")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	list, err := words.Load(*wordsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load words:", err)
		return
	}

	engine := app.New(
		store.NewMemoryStore(),
		similarity.NewHTTPClient(*baseURL, similarity.WithTimeout(*timeout)),
		list,
		app.WithRandomSeed(*seed),
	)

	channelID := uuid.NewString()
	fmt.Println("commands: guess <word>, hint, top [n], new-game, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() || ctx.Err() != nil {
			break
		}
		line := scanner.Text()
		if line == "quit" || line == "exit" {
			break
		}

		for _, reply := range engine.Handle(ctx, channelID, *author, line) {
			fmt.Println(reply)
		}
	}
}
