// Command corpusstore runs the deobfuscation + indicator pipeline over a
// growing MySQL-backed corpus of captured PowerShell snippets: for every row
// without a recorded result yet, it folds the script with minusone, scans
// the folded text with detect, and writes both back. Repeated runs only
// touch new rows, making it a regression/triage tool for a corpus that
// grows over time. Adapted from the teacher's cmd/storeminer-diff, which
// read snippets out of a MySQL `detections` table the same way.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/minusone-go/minusone"
	"github.com/minusone-go/minusone/detect"
)

var dsn = flag.String("dsn", "root:root@tcp(127.0.0.1:3306)/minusone_corpus", "MySQL DSN for the sample corpus")

func main() {
	flag.Parse()

	rules, err := detect.Compile(defaultIndicatorRules())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling indicator rules: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("mysql", *dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to MySQL: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, script FROM samples WHERE deobfuscated IS NULL AND script IS NOT NULL`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying corpus: %v\n", err)
		os.Exit(1)
	}

	type pending struct {
		id     int64
		script string
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.script); err != nil {
			continue
		}
		todo = append(todo, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading corpus rows: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processing %d pending samples\n", len(todo))

	update, err := db.Prepare(`UPDATE samples SET deobfuscated = ?, indicators = ?, budget_exceeded = ? WHERE id = ?`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing update statement: %v\n", err)
		os.Exit(1)
	}
	defer update.Close()

	var processed, errored int
	for _, p := range todo {
		result, err := minusone.Deobfuscate(p.script, minusone.Powershell, minusone.Options{
			StripComments:         true,
			RemoveDeadAssignments: true,
		})
		if err != nil {
			errored++
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		matches, err := detect.Scan(ctx, rules, result.Text)
		cancel()
		if err != nil {
			errored++
			continue
		}

		indicatorsJSON, err := json.Marshal(ruleNames(matches))
		if err != nil {
			errored++
			continue
		}

		if _, err := update.Exec(result.Text, string(indicatorsJSON), result.BudgetExceeded, p.id); err != nil {
			errored++
			continue
		}
		processed++
	}

	fmt.Printf("Updated %d samples (%d errors)\n", processed, errored)
}

func ruleNames(matches []detect.RuleMatch) []string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Rule
	}
	return names
}
