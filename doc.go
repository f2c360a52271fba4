// Package stockbook tracks the equity positions of a single investor and
// computes the profit of any date window.
//
// The core functionalities include:
//   - Ledger: an append-only record of every buy and sell, per ticker, that
//     can be replayed up to any date.
//   - Positions: the current holding of each ticker with its weighted average
//     cost basis, live valuation and share of the portfolio.
//   - Timelines: for a ticker and a window, the state held at the window start
//     and the ordered events inside the window, closed by a boundary event.
//   - Profit walk: a state machine that consumes a timeline and attributes
//     profit to every event.
//   - Summary: the portfolio-level aggregation of the per ticker profits.
//
// Prices and the trading calendar are external collaborators described by the
// [Prices] and [Calendar] interfaces. An [Account] ties everything together and
// serializes every operation.
package stockbook
