package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpctransport "artisan-directory/internal/transport/grpc"
)

var states = []string{"Lagos", "Oyo", "Kano", "Enugu"}
var cities = []string{"Ikeja", "Ibadan", "Kano", "Nsukka"}

func main() {
	baseURL := pflag.String("url", "http://127.0.0.1:5000/api/artisans", "artisan API base URL")
	grpcAddr := pflag.String("grpc", "127.0.0.1:50055", "gRPC ops server address")
	iterations := pflag.Int("n", 200, "number of registrations and searches")
	pflag.Parse()

	fmt.Println("=== Artisan API load check ===")

	if err := checkHealth(*grpcAddr); err != nil {
		log.Fatalf("health check: %v", err)
	}

	registerStats := measure(*iterations, func(i int) error {
		return register(*baseURL, i)
	})
	searchStats := measure(*iterations, func(i int) error {
		return search(*baseURL, states[i%len(states)], cities[rand.Intn(len(cities))])
	})

	fmt.Println()
	fmt.Printf("register: avg=%v | min=%v | max=%v\n", registerStats.Avg, registerStats.Min, registerStats.Max)
	fmt.Printf("search:   avg=%v | min=%v | max=%v\n", searchStats.Avg, searchStats.Min, searchStats.Max)
}

type stats struct {
	Avg, Min, Max time.Duration
}

func measure(iterations int, call func(i int) error) stats {
	var total time.Duration
	min := time.Hour
	max := time.Duration(0)

	for i := 0; i < iterations; i++ {
		start := time.Now()
		if err := call(i); err != nil {
			log.Fatalf("request %d failed: %v", i, err)
		}
		elapsed := time.Since(start)

		total += elapsed
		if elapsed < min {
			min = elapsed
		}
		if elapsed > max {
			max = elapsed
		}
	}

	if iterations == 0 {
		return stats{}
	}
	return stats{
		Avg: total / time.Duration(iterations),
		Min: min,
		Max: max,
	}
}

func checkHealth(addr string) error {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{
		Service: grpctransport.ServiceName,
	})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("service is %v", resp.GetStatus())
	}
	return nil
}

func register(baseURL string, i int) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := map[string]string{
		"fullName":   fmt.Sprintf("Artisan %d", i),
		"phone":      fmt.Sprintf("555-%04d", i),
		"email":      fmt.Sprintf("artisan%d@example.com", i),
		"state":      states[i%len(states)],
		"city":       cities[i%len(cities)],
		"specialty":  "carpentry",
		"experience": fmt.Sprint(i % 20),
		"minPrice":   "50",
		"maxPrice":   "400",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	resp, err := http.Post(baseURL+"/register", w.FormDataContentType(), &body)
	if err != nil {
		return err
	}
	return expectStatus(resp, http.StatusCreated)
}

func search(baseURL, state, city string) error {
	q := url.Values{"state": {state}, "city": {city}}
	resp, err := http.Get(baseURL + "/search?" + q.Encode())
	if err != nil {
		return err
	}
	return expectStatus(resp, http.StatusOK)
}

func expectStatus(resp *http.Response, want int) error {
	defer resp.Body.Close()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, b)
	}
	_, err := io.Copy(io.Discard, resp.Body)
	return err
}
