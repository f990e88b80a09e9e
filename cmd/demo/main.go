// Command demo walks a full vending machine session against a running
// server: reset, insert coins, browse, fill the cart, purchase, then a
// second transaction that gets cancelled.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/alovak/vending-playground/vending/models"
)

func main() {
	baseURL := flag.String("url", "http://localhost:3000/api", "base URL of the vending machine API")
	flag.Parse()

	d := &demo{baseURL: *baseURL, client: http.DefaultClient}

	if err := d.run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo failed:", err)
		os.Exit(1)
	}
}

type demo struct {
	baseURL string
	client  *http.Client
}

func (d *demo) run() error {
	fmt.Println("Vending Machine API Demo")
	fmt.Println()

	fmt.Println("1. Resetting the machine...")
	if err := d.post("/admin/reset", nil, &models.ResetResponse{}); err != nil {
		return err
	}

	fmt.Println("2. Checking available products...")
	products := models.ProductsResponse{}
	if err := d.get("/products", &products); err != nil {
		return err
	}
	fmt.Printf("   found %d products, balance %g\n", len(products.Products), products.InsertedBalance)

	fmt.Println("3. Inserting coins (5, then 2)...")
	for _, value := range []float64{5, 2} {
		v := value
		inserted := models.InsertCoinResponse{}
		if err := d.post("/coins/insert", models.InsertCoinRequest{Value: &v}, &inserted); err != nil {
			return err
		}
		fmt.Printf("   inserted %g, balance %g\n", v, inserted.InsertedBalance)
	}

	fmt.Println("4. Adding products to cart...")
	for _, id := range []string{"juice_orange", "snack_tiktak"} {
		added := models.CartMutationResponse{}
		if err := d.post("/cart/add", models.AddToCartRequest{ProductID: id}, &added); err != nil {
			return err
		}
		fmt.Printf("   %s\n", added.Message)
	}

	cart := models.CartResponse{}
	if err := d.get("/cart", &cart); err != nil {
		return err
	}
	fmt.Printf("   cart total %g, remaining balance %g\n", cart.Cart.TotalCost, cart.RemainingBalance)

	fmt.Println("5. Completing purchase...")
	purchase := models.PurchaseResponse{}
	if err := d.post("/purchase", nil, &purchase); err != nil {
		return err
	}
	fmt.Printf("   total cost %g, change %g\n", purchase.TotalCost, purchase.ChangeAmount)
	for _, c := range purchase.Change {
		fmt.Printf("   change: %d x %g\n", c.Count, c.Denomination)
	}

	fmt.Println("6. Starting and cancelling a second transaction...")
	v := 10.0
	if err := d.post("/coins/insert", models.InsertCoinRequest{Value: &v}, &models.InsertCoinResponse{}); err != nil {
		return err
	}
	cancel := models.CancelResponse{}
	if err := d.post("/transaction/cancel", nil, &cancel); err != nil {
		return err
	}
	fmt.Printf("   refunded %g\n", cancel.RefundAmount)

	fmt.Println()
	fmt.Println("Demo completed.")
	return nil
}

func (d *demo) get(path string, out any) error {
	resp, err := d.client.Get(d.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decode(resp, out)
}

func (d *demo) post(path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	resp, err := d.client.Post(d.baseURL+path, "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decode(resp, out)
}

func decode(resp *http.Response, out any) error {
	if resp.StatusCode != http.StatusOK {
		failure := models.ErrorResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Message != "" {
			return fmt.Errorf("%s: %s", resp.Status, failure.Message)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
