package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/repositories"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/fatih/color"
)

const usage = "Commands: backup, summary <username>, due <username>, monthly <username> [year month]"

func main() {
	argsLen := len(os.Args)
	if argsLen < 2 {
		fmt.Println("Usage: finance_cli <command> [arguments]")
		fmt.Println(usage)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		color.Red("Failed to load config: %v", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx := context.Background()
	store, err := repositories.NewRecordStore(ctx, cfg, logger)
	if err != nil {
		color.Red("Failed to open record store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := services.NewServiceContainer(cfg, store)

	switch cmd := os.Args[1]; cmd {
	case "backup":
		if err := svc.Backup.Backup(ctx); err != nil {
			color.Red("Backup failed: %v", err)
			os.Exit(1)
		}
		color.Green("Backup written to %s", cfg.BackupDir)
	case "summary":
		if argsLen < 3 {
			fmt.Println("Usage: summary <username>")
			return
		}
		sum, err := svc.Reporting.Summary(ctx, os.Args[2])
		if err != nil {
			color.Red("Error building summary: %v", err)
			os.Exit(1)
		}
		printSummary(sum)
	case "due":
		if argsLen < 3 {
			fmt.Println("Usage: due <username>")
			return
		}
		due, err := svc.Reminder.DueReminders(ctx, os.Args[2], time.Now())
		if err != nil {
			color.Red("Error listing reminders: %v", err)
			os.Exit(1)
		}
		printDue(due)
	case "monthly":
		if argsLen < 3 {
			fmt.Println("Usage: monthly <username> [year month]")
			return
		}
		now := time.Now()
		year, month := now.Year(), now.Month()
		if argsLen >= 5 {
			y, yerr := strconv.Atoi(os.Args[3])
			m, merr := strconv.Atoi(os.Args[4])
			if yerr != nil || merr != nil {
				color.Red("Invalid year or month")
				os.Exit(1)
			}
			year, month = y, time.Month(m)
		}
		report, err := svc.Reporting.MonthlyReport(ctx, os.Args[2], year, month)
		if err != nil {
			color.Red("Error building monthly report: %v", err)
			os.Exit(1)
		}
		fmt.Printf("%s %d\n", report.Month, report.Year)
		printSummary(report.Totals)
		for _, c := range report.Categories {
			fmt.Printf("  %-20s %12s  (%d)\n", c.Category, c.Total.StringFixed(2), c.Count)
		}
	default:
		fmt.Println("Unknown command:", cmd)
		fmt.Println(usage)
	}
}

func printSummary(sum domain.Summary) {
	if len(sum) == 0 {
		fmt.Println("No transactions recorded.")
		return
	}
	currencies := make([]string, 0, len(sum))
	for c := range sum {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	for _, c := range currencies {
		t := sum[c]
		net := utils.FormatMoney(t.Net, c)
		if t.Net.IsNegative() {
			net = color.RedString(net)
		} else {
			net = color.GreenString(net)
		}
		fmt.Printf("%s  income %s  expense %s  net %s\n", c, utils.FormatMoney(t.Income, c), utils.FormatMoney(t.Expense, c), net)
	}
}

func printDue(due []domain.ReminderDue) {
	if len(due) == 0 {
		fmt.Println("Nothing due.")
		return
	}
	for _, d := range due {
		line := fmt.Sprintf("%s (%s): %s", d.Reminder.Title, d.Reminder.Amount.StringFixed(2), d.Message)
		switch d.State.Status {
		case domain.DueOverdue:
			color.Red("%s", line)
		case domain.DueToday:
			color.Yellow("%s", line)
		default:
			fmt.Println(line)
		}
	}
}
