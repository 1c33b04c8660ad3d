package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/config"
	"github.com/tavolo/tavolo/internal/models"
	"github.com/tavolo/tavolo/internal/service"
	"github.com/tavolo/tavolo/internal/storage"
)

// app is the terminal presentation layer: a login screen, a customer view
// for ordering, and a kitchen view for staff. It reads commands line by
// line from stdin.
type app struct {
	cfg      config.Config
	accounts *service.AccountService
	menu     *service.MenuService
	orders   *service.OrderService
	store    storage.Store

	in *bufio.Scanner
}

func (a *app) run(ctx context.Context) error {
	a.in = bufio.NewScanner(os.Stdin)

	for ctx.Err() == nil {
		user, err := a.accounts.CurrentUser(ctx)
		if err != nil {
			return err
		}

		switch {
		case user == nil:
			err = a.loginScreen(ctx)
		case user.Role == models.RoleAdmin:
			err = a.kitchenView(ctx, user)
		default:
			err = a.customerView(ctx, user)
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// errQuit signals that the user asked to exit the program.
var errQuit = errors.New("quit")

func (a *app) loginScreen(ctx context.Context) error {
	fmt.Println("\n== Tavolo ==")
	fmt.Println("[1] login  [2] register  [q] quit")

	switch a.prompt("> ") {
	case "1":
		username := a.prompt("username: ")
		password := a.prompt("password: ")
		user, err := a.accounts.Login(ctx, username, password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			fmt.Println("invalid username or password")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("welcome, %s (%s)\n", user.Username, user.Role)
	case "2":
		username := a.prompt("username: ")
		password := a.prompt("password: ")
		role := models.Role(a.prompt("role (client/admin): "))
		_, err := a.accounts.Register(ctx, username, password, role)
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			fmt.Println("that username is taken")
		case errors.Is(err, auth.ErrInvalidRole):
			fmt.Println("role must be client or admin")
		case err != nil:
			return err
		default:
			fmt.Println("registered, you can log in now")
		}
	case "q":
		return errQuit
	}
	return nil
}

// customerView lets a client browse the menu, build a cart, and place the
// order.
func (a *app) customerView(ctx context.Context, user *models.User) error {
	cart := map[int64]int{}
	var sequence []int64 // cart insertion order, preserved on the order

	for {
		fmt.Printf("\n== Ordering as %s ==\n", user.Username)
		fmt.Println("[m] menu  [a] add to cart  [p] place order  [o] my orders  [l] logout  [q] quit")

		switch a.prompt("> ") {
		case "m":
			items, err := a.menu.List(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("the menu is empty")
			}
			for _, item := range items {
				fmt.Printf("  #%d %s  %.2f\n", item.ID, item.Name, item.Price)
			}
		case "a":
			id, ok := a.promptInt("menu item id: ")
			if !ok {
				continue
			}
			qty, ok := a.promptInt("quantity: ")
			if !ok || qty <= 0 {
				fmt.Println("quantity must be positive")
				continue
			}
			if cart[id] == 0 {
				sequence = append(sequence, id)
			}
			cart[id] += int(qty)
			fmt.Printf("cart now holds %d line(s)\n", len(sequence))
		case "p":
			if len(sequence) == 0 {
				fmt.Println("cart is empty")
				continue
			}
			order := &models.Order{
				ID:       time.Now().UnixMilli(),
				Username: user.Username,
			}
			for _, id := range sequence {
				order.Items = append(order.Items, models.OrderItem{MenuItemID: id, Quantity: cart[id]})
			}
			if err := a.orders.Add(ctx, order); err != nil {
				return err
			}
			fmt.Printf("order #%d placed\n", order.ID)
			cart = map[int64]int{}
			sequence = nil
		case "o":
			all, err := a.orders.List(ctx)
			if err != nil {
				return err
			}
			for _, o := range all {
				if o.Username == user.Username {
					printOrder(o)
				}
			}
		case "l":
			return a.accounts.Logout(ctx)
		case "q":
			return errQuit
		}
	}
}

// kitchenView is the staff side: orders with their status actions plus menu
// management, refreshed in the background at the configured interval.
func (a *app) kitchenView(ctx context.Context, user *models.User) error {
	pollCtx, stopPoll := context.WithCancel(ctx)
	defer stopPoll()

	var (
		mu   sync.Mutex
		snap service.Snapshot
	)
	poller := service.NewPoller(a.store, a.cfg.PollInterval, func(s service.Snapshot) {
		mu.Lock()
		snap = s
		mu.Unlock()
	})
	go poller.Run(pollCtx)

	for {
		fmt.Printf("\n== Kitchen (%s) ==\n", user.Username)
		fmt.Println("[o] orders  [r] mark ready  [s] mark served  [m] menu  [+] add dish  [-] remove dish  [l] logout  [q] quit")

		choice := a.prompt("> ")
		switch choice {
		case "o":
			mu.Lock()
			orders := snap.Orders
			mu.Unlock()
			if len(orders) == 0 {
				fmt.Println("no orders yet")
			}
			for _, o := range orders {
				printOrder(o)
			}
		case "r", "s":
			id, ok := a.promptInt("order id: ")
			if !ok {
				continue
			}
			target := models.StatusReady
			if choice == "s" {
				target = models.StatusServed
			}
			err := a.orders.UpdateStatus(ctx, id, target)
			if errors.Is(err, service.ErrInvalidTransition) {
				fmt.Println(err)
				continue
			}
			if err != nil {
				return err
			}
		case "m":
			mu.Lock()
			menu := snap.Menu
			mu.Unlock()
			for _, item := range menu {
				fmt.Printf("  #%d %s  %.2f\n", item.ID, item.Name, item.Price)
			}
		case "+":
			name := a.prompt("name: ")
			price, err := strconv.ParseFloat(a.prompt("price: "), 64)
			if err != nil || price < 0 {
				fmt.Println("price must be a non-negative number")
				continue
			}
			image := a.prompt("image url: ")
			item := models.MenuItem{
				ID:    time.Now().UnixMilli(),
				Name:  name,
				Price: price,
				Image: image,
			}
			if err := a.menu.Add(ctx, item); err != nil {
				return err
			}
			fmt.Printf("dish #%d added\n", item.ID)
		case "-":
			id, ok := a.promptInt("menu item id: ")
			if !ok {
				continue
			}
			if err := a.menu.Remove(ctx, id); err != nil {
				return err
			}
		case "l":
			return a.accounts.Logout(ctx)
		case "q":
			return errQuit
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return "q"
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) promptInt(label string) (int64, bool) {
	raw := a.prompt(label)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Printf("%q is not a number\n", raw)
		return 0, false
	}
	return n, true
}

func printOrder(o models.Order) {
	placed := time.Unix(o.CreatedAt, 0).Format("15:04:05")
	fmt.Printf("  order #%d  %s  [%s]  placed %s\n", o.ID, o.Username, o.Status, placed)
	for _, line := range o.Items {
		fmt.Printf("    %dx item #%d\n", line.Quantity, line.MenuItemID)
	}
}
