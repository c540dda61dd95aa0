package mcpd_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	mcpd "github.com/effective-security/mcpd-go"
	"github.com/effective-security/x/values"
)

func Example() {
	// A stub daemon stands in for mcpd running on localhost.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/servers":
			_, _ = w.Write([]byte(`["time"]`))
		case "/api/v1/servers/time/tools":
			_, _ = w.Write([]byte(`{"tools":[{"name":"get_current_time","description":"Get the current time.","inputSchema":{"type":"object","properties":{"timezone":{"type":"string"}},"required":["timezone"]}}]}`))
		case "/api/v1/servers/time/tools/get_current_time":
			_, _ = w.Write([]byte(`{"time":"2024-01-15T10:30:00Z"}`))
		}
	}))
	defer srv.Close()

	client, err := mcpd.New(srv.URL)
	if err != nil {
		panic(err)
	}
	ctx := context.Background()

	servers, _ := client.Servers(ctx)
	fmt.Println(servers)

	res, err := client.Server("time").Tool("get_current_time").
		Invoke(ctx, values.MapAny{"timezone": "UTC"})
	if err != nil {
		panic(err)
	}
	fmt.Println(res)

	funcs, _ := client.AgentTools(ctx)
	for _, f := range funcs {
		fmt.Println(f.Name())
	}

	// Output:
	// [time]
	// map[time:2024-01-15T10:30:00Z]
	// time__get_current_time
}
