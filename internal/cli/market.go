package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stochwalk/internal/market"
	"stochwalk/internal/plot"
	"stochwalk/internal/portfolio"
	"stochwalk/internal/report"
)

var (
	marketPlotFile string
	marketAdvance  int

	portfolioAdvance int
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "simulate the configured market and its weighted index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, index, err := buildMarket(marketAdvance)
		if err != nil {
			return err
		}
		if err := report.Market(cmd.OutOrStdout(), m, index); err != nil {
			return err
		}

		if marketPlotFile == "" {
			return nil
		}
		var series []plot.Series
		for _, symbol := range m.Symbols() {
			path, err := m.Path(symbol)
			if err != nil {
				return err
			}
			series = append(series, plot.Series{Name: symbol, X: path.Times, Y: path.Values})
		}
		series = append(series, plot.Series{Name: "INDEX", X: index.Times, Y: index.Values})
		if err := plot.SaveFile(marketPlotFile, func(w io.Writer) error {
			return plot.Lines(w, "market", series)
		}); err != nil {
			return err
		}
		log.Infof("market plot saved to %s", marketPlotFile)
		return nil
	},
}

// portfolioCmd buys SYMBOL=QTY positions at step 0 and values them after
// --advance steps.
var portfolioCmd = &cobra.Command{
	Use:   "portfolio SYMBOL=QTY...",
	Short: "buy positions in the simulated market and mark them to market",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := parseOrders(args)
		if err != nil {
			return err
		}

		m, _, err := buildMarket(0)
		if err != nil {
			return err
		}
		p, err := portfolio.New(cfg.Portfolio.Capital, m)
		if err != nil {
			return err
		}
		for _, o := range orders {
			pos, err := p.AddStock(o.symbol, o.quantity)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"symbol":   pos.Symbol(),
				"quantity": pos.Quantity(),
				"price":    pos.EntryPrice(),
			}).Info("position opened")
		}

		m.AdvanceBy(portfolioAdvance)
		return report.Portfolio(cmd.OutOrStdout(), m, p)
	},
}

func init() {
	marketCmd.Flags().StringVar(&marketPlotFile, "plot", "", "render every symbol and the index to this PNG file")
	marketCmd.Flags().IntVar(&marketAdvance, "advance", 0, "advance the market clock this many steps before reporting")
	portfolioCmd.Flags().IntVar(&portfolioAdvance, "advance", 251, "steps to hold the positions")

	RootCmd.AddCommand(marketCmd)
	RootCmd.AddCommand(portfolioCmd)
}

// buildMarket creates the configured market, moves its clock and composes
// the configured index.
func buildMarket(advance int) (*market.Market, *market.Index, error) {
	m := market.New(source())
	if err := cfg.BuildMarket(m); err != nil {
		return nil, nil, err
	}
	m.AdvanceBy(advance)

	weights := cfg.Market.Index
	if len(weights) == 0 {
		symbols := m.Symbols()
		for _, s := range symbols {
			weights = append(weights, market.Weight{Symbol: s, Weight: 1 / float64(len(symbols))})
		}
	}
	index, err := m.CreateIndex(weights...)
	if err != nil {
		return nil, nil, err
	}
	return m, index, nil
}

type order struct {
	symbol   string
	quantity float64
}

func parseOrders(args []string) ([]order, error) {
	orders := make([]order, 0, len(args))
	for _, arg := range args {
		symbol, qty, ok := strings.Cut(arg, "=")
		if !ok || symbol == "" {
			return nil, fmt.Errorf("invalid order %q, want SYMBOL=QTY", arg)
		}
		quantity, err := strconv.ParseFloat(qty, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", arg, err)
		}
		orders = append(orders, order{symbol: strings.ToUpper(symbol), quantity: quantity})
	}
	return orders, nil
}
