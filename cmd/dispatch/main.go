package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"taxi-dispatch-service/internal/adapters/instancefile"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/services"
	"text/tabwriter"
	"time"
)

// dispatch solves a single instance file and prints the rounds taken.
func main() {
	path := flag.String("instance", "data/seeds/example.json", "instance file (.json, .yaml)")
	heuristic := flag.Bool("heuristic", true, "use A* with the nearest-taxi bound (false runs Dijkstra)")
	greedy := flag.Bool("greedy", false, "use the greedy one-step planner instead of optimal search")
	maxExpansions := flag.Int("max-expansions", 0, "stop after this many expanded states (0 = unlimited)")
	flag.Parse()

	inst, err := instancefile.Load(*path)
	if err != nil {
		log.Fatal(err)
	}

	start := domain.Start(inst)
	t0 := time.Now()

	var (
		edges    []domain.Edge
		cost     float64
		expanded int
	)
	algo := domain.AlgorithmDijkstra

	switch {
	case *greedy:
		algo = domain.AlgorithmGreedy
		res, err := services.GreedyDispatch(inst, start)
		if err != nil {
			fail(err)
		}
		edges, cost, expanded = res.Path, res.Cost, res.Expanded

	default:
		opts := []services.SearchOption{services.WithMaxExpansions(*maxExpansions)}
		if *heuristic {
			algo = domain.AlgorithmAStar
			opts = append(opts, services.WithHeuristic())
		}

		res, err := services.Search(inst, start, opts...)
		if err != nil {
			fail(err)
		}
		edges, err = res.Path()
		if err != nil {
			fail(err)
		}
		cost, expanded = res.Cost, res.Stats.Expanded
	}
	elapsed := time.Since(t0)

	plan, err := services.BuildDispatchPlan(inst, start, edges)
	if err != nil {
		fail(err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUND\tCUSTOMER\tTAXI\tPICKUP_AT\tDROPOFF_AT")
	for _, r := range plan.Rounds {
		for _, trip := range r.Trips {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%.3f\t%.3f\n", r.Index, trip.Customer, trip.Taxi, trip.PickupAt, trip.DropoffAt)
		}
	}
	_ = tw.Flush()

	fmt.Printf("\ninstance=%s algorithm=%s customers=%d taxis=%d\n", inst.Name, algo, len(inst.Customers), len(inst.Taxis))
	fmt.Printf("total_cost=%.3f makespan=%.3f rounds=%d expanded=%d elapsed=%s\n",
		cost, plan.Makespan, len(plan.Rounds), expanded, elapsed.Round(time.Microsecond))
}

func fail(err error) {
	switch {
	case errors.Is(err, services.ErrUnsolvable):
		log.Fatalf("no dispatch serves every customer: %v", err)
	case errors.Is(err, services.ErrExpansionLimit):
		log.Fatalf("gave up: %v (raise -max-expansions)", err)
	default:
		log.Fatal(err)
	}
}
