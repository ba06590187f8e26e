package api

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rhlunch/rhlunch/pkg/classify"
	"github.com/rhlunch/rhlunch/pkg/kit"
	"github.com/rhlunch/rhlunch/pkg/menu"
)

// RegisterMCPTools registers the lunch menu MCP tools on the server.
// The tools dispatch to the same endpoints the HTTP routes serve.
func RegisterMCPTools(srv *server.MCPServer, agg *menu.Aggregator, cls *classify.Classifier, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	registerGetDailyMenu(srv, agg, logger)
	registerGetWeeklyMenu(srv, agg, logger)
	registerListRestaurants(srv, agg, logger)
	registerClassifyDish(srv, cls, logger)
}

func registerGetDailyMenu(srv *server.MCPServer, agg *menu.Aggregator, logger *slog.Logger) {
	tool := mcp.NewTool("get_daily_menu",
		mcp.WithDescription("Get one day's lunch menu from one or all restaurants, with dishes tagged vegetarian/fish/meat."),
		mcp.WithString("restaurant", mcp.Description("Comma-separated restaurant ids (e.g. gourmedia,karavan). Empty = all.")),
		mcp.WithString("category", mcp.Description("Category filter: vegetarian, fish, or meat")),
		mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD format. Empty = today.")),
	)
	endpoint := kit.Logging(logger, "daily_menu")(dailyMenuEndpoint(agg))
	kit.RegisterMCPTool(srv, tool, endpoint, decodeMenuArgs)
}

func registerGetWeeklyMenu(srv *server.MCPServer, agg *menu.Aggregator, logger *slog.Logger) {
	tool := mcp.NewTool("get_weekly_menu",
		mcp.WithDescription("Get the full Monday-to-Sunday lunch menu for the week containing a date."),
		mcp.WithString("restaurant", mcp.Description("Comma-separated restaurant ids. Empty = all.")),
		mcp.WithString("category", mcp.Description("Category filter: vegetarian, fish, or meat")),
		mcp.WithString("date", mcp.Description("Any date inside the wanted week, YYYY-MM-DD. Empty = this week.")),
	)
	endpoint := kit.Logging(logger, "weekly_menu")(weeklyMenuEndpoint(agg))
	kit.RegisterMCPTool(srv, tool, endpoint, decodeMenuArgs)
}

func registerListRestaurants(srv *server.MCPServer, agg *menu.Aggregator, logger *slog.Logger) {
	tool := mcp.NewTool("list_restaurants",
		mcp.WithDescription("List the known lunch restaurants and their source kinds."),
	)
	endpoint := kit.Logging(logger, "list_restaurants")(listRestaurantsEndpoint(agg))
	kit.RegisterMCPTool(srv, tool, endpoint, func(mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}

func registerClassifyDish(srv *server.MCPServer, cls *classify.Classifier, logger *slog.Logger) {
	tool := mcp.NewTool("classify_dish",
		mcp.WithDescription("Classify a single dish name as vegetarian, fish, meat, or unclassified."),
		mcp.WithString("dish", mcp.Required(), mcp.Description("The dish name to classify")),
	)
	endpoint := kit.Logging(logger, "classify_dish")(classifyDishEndpoint(cls))
	kit.RegisterMCPTool(srv, tool, endpoint, func(req mcp.CallToolRequest) (any, error) {
		dish, _ := req.GetArguments()["dish"].(string)
		return &classifyReq{Dish: dish}, nil
	})
}

func decodeMenuArgs(req mcp.CallToolRequest) (any, error) {
	args := req.GetArguments()

	dateArg, _ := args["date"].(string)
	date, err := parseDate(dateArg)
	if err != nil {
		return nil, err
	}

	restaurantArg, _ := args["restaurant"].(string)
	categoryArg, _ := args["category"].(string)
	filter, err := parseFilter(restaurantArg, categoryArg)
	if err != nil {
		return nil, err
	}

	return &menuReq{Date: date, Filter: filter}, nil
}
