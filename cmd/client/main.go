// Command client is a terminal front end for the gold tracker backend. It
// drives the same controller the tests exercise: a price ticker refreshed
// every five minutes, the purchase list, the portfolio summary, and the
// add/edit/delete flows.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/wsantoso/gold-tracker/internal/client"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "backend base URL")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	view := client.NewTermView(os.Stdout, os.Stdin)
	api := client.New(*server, nil)
	ctrl := client.NewController(api, view, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl.Start(ctx)

	fmt.Println(`Commands: list, prices, portfolio, add, edit <id>, delete <id>, refresh, quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")

		switch cmd {
		case "":
		case "list":
			ctrl.LoadPurchases(ctx)
		case "prices":
			ctrl.LoadPrices(ctx)
		case "portfolio":
			ctrl.LoadPortfolio(ctx)
		case "refresh":
			ctrl.LoadPurchases(ctx)
			ctrl.LoadPortfolio(ctx)
			ctrl.LoadPrices(ctx)
		case "add":
			fillForm(scanner, view, ctrl)
			ctrl.Submit(ctx)
		case "edit":
			id, err := parseID(arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			ctrl.Edit(id)
			if _, editing := ctrl.State().EditingID(); !editing {
				fmt.Println("no such purchase")
				continue
			}
			fillForm(scanner, view, ctrl)
			ctrl.Submit(ctx)
		case "delete":
			id, err := parseID(arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			ctrl.Delete(ctx, id)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

// fillForm prompts for each form field. Empty input keeps the current value,
// so edits only override what the user types. The total recomputes after the
// weight and price inputs, exactly as the form's input events would.
func fillForm(scanner *bufio.Scanner, view *client.TermView, ctrl *client.Controller) {
	prompt := func(label, field, current string) {
		fmt.Printf("%s [%s]: ", label, current)
		if !scanner.Scan() {
			return
		}
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			view.SetField(field, text)
		}
	}

	form := view.Form()
	prompt("weight (g)", "weight", form.Weight)
	ctrl.CalculateTotal()
	prompt("price per gram", "purchasePrice", form.PurchasePrice)
	ctrl.CalculateTotal()
	form = view.Form()
	fmt.Printf("total paid: %s\n", form.TotalPaid)
	prompt("purchase date (YYYY-MM-DD)", "purchaseDate", form.PurchaseDate)
	prompt("notes", "notes", form.Notes)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("expected a numeric id, got %q", arg)
	}
	return uint(id), nil
}
