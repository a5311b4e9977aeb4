package order_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sitehatch/market-backend/internal/application/commands/order"
	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/stretchr/testify/require"
)

// fakeStore records uploads in call order and can be told to fail on the n-th
// upload (1-based).
type fakeStore struct {
	uploads []string
	deleted []string
	failOn  int
}

func (f *fakeStore) UploadFile(_ context.Context, key string, _ *string, body io.Reader) (string, error) {
	if f.failOn > 0 && len(f.uploads)+1 == f.failOn {
		return "", errors.New("connection reset")
	}
	_, _ = io.ReadAll(body)
	f.uploads = append(f.uploads, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStore) DeleteObjects(_ context.Context, keys []string) error {
	f.deleted = append(f.deleted, keys...)
	return nil
}

func pending(role consts.FileRole, name string) order.PendingFile {
	return order.PendingFile{
		Role:        role,
		Name:        name,
		ContentType: "image/png",
		Content:     strings.NewReader("content of " + name),
	}
}

func validRequest() *order.SubmitOrderRequest {
	return &order.SubmitOrderRequest{
		Name:       "Wanjiku Kamau",
		Email:      "wanjiku@example.com",
		Phone:      "+254700000000",
		Category:   "business",
		TemplateID: 1,
		Country:    "KE",
		Form: map[string]string{
			"business_name": "Kamau Crafts",
			"business_type": "Retail",
		},
	}
}

func Test_UploadBatch_When_Logo_And_Media_Files_Then_URLs_In_Upload_Order(t *testing.T) {
	store := &fakeStore{}
	batch := order.NewUploadBatch(store, "uploads/")
	now := time.Now()

	// deliberately out of role order: the batch must still upload logo first
	files := []order.PendingFile{
		pending(consts.FileRoleMedia, "team photo.jpg"),
		pending(consts.FileRoleLogo, "logo.png"),
		pending(consts.FileRoleMedia, "office.jpg"),
	}

	result, err := batch.Run(context.Background(), now, files)
	require.NoError(t, err)
	require.Len(t, result.URLs, 3)
	require.Len(t, result.Keys, 3)

	prefix := fmt.Sprintf("uploads/%d-", now.UnixMilli())
	require.Equal(t, prefix+"logo.png", result.Keys[0])
	require.Equal(t, prefix+"team-photo.jpg", result.Keys[1])
	require.Equal(t, prefix+"office.jpg", result.Keys[2])
	require.Equal(t, store.uploads, result.Keys)
}

func Test_UploadBatch_When_Second_File_Fails_Then_First_Object_Stays_Behind(t *testing.T) {
	store := &fakeStore{failOn: 2}
	batch := order.NewUploadBatch(store, "uploads/")

	files := []order.PendingFile{
		pending(consts.FileRoleMedia, "one.jpg"),
		pending(consts.FileRoleMedia, "two.jpg"),
	}

	result, err := batch.Run(context.Background(), time.Now(), files)

	var uploadErr errs.UploadError
	require.ErrorAs(t, err, &uploadErr)
	require.Len(t, store.uploads, 1, "first object must remain in storage")
	require.Len(t, result.Keys, 1)
	require.Empty(t, store.deleted, "upload failure does not roll back earlier objects")
}

func Test_SubmitOrder_When_Contact_Field_Missing_Then_No_Upload_Happens(t *testing.T) {
	store := &fakeStore{}
	// nil uow factory: a validation failure must short-circuit before any
	// storage or database call, so it is never dereferenced
	sut := order.NewSubmitOrder(nil, store, nil, "uploads/")

	for _, drop := range []string{"name", "email", "phone"} {
		req := validRequest()
		req.Files = []order.PendingFile{pending(consts.FileRoleLogo, "logo.png")}
		switch drop {
		case "name":
			req.Name = ""
		case "email":
			req.Email = ""
		case "phone":
			req.Phone = ""
		}

		_, err := sut.Execute(context.Background(), req)

		var validationErr errs.ValidationError
		require.ErrorAs(t, err, &validationErr, "missing %s", drop)
		require.Empty(t, store.uploads, "missing %s must not trigger uploads", drop)
	}
}

func Test_SubmitOrder_When_Malformed_Email_Then_ValidationError(t *testing.T) {
	sut := order.NewSubmitOrder(nil, &fakeStore{}, nil, "uploads/")
	req := validRequest()
	req.Email = "not-an-email"

	_, err := sut.Execute(context.Background(), req)

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func Test_SubmitOrder_When_Unknown_Category_Then_Valid_Categories_Listed(t *testing.T) {
	sut := order.NewSubmitOrder(nil, &fakeStore{}, nil, "uploads/")
	req := validRequest()
	req.Category = "restaurant"

	_, err := sut.Execute(context.Background(), req)

	var catErr order.InvalidCategoryError
	require.ErrorAs(t, err, &catErr)
	require.Equal(t, "restaurant", catErr.Category)
	require.NotEmpty(t, catErr.Valid)
	require.Contains(t, err.Error(), "business")
}

func Test_Validate_Conditional_Field_Invariants(t *testing.T) {
	t.Run("extra pages required iff page count above threshold", func(t *testing.T) {
		for pages := 1; pages <= 10; pages++ {
			req := validRequest()
			req.PageCount = pages

			err := order.Validate(req)
			if pages > 5 {
				require.Error(t, err, "pages=%d", pages)
			} else {
				require.NoError(t, err, "pages=%d", pages)
			}

			req.ExtraPages = "an about page and a contact page"
			require.NoError(t, order.Validate(req), "pages=%d with description", pages)
		}
	})

	t.Run("domain name required iff custom domain", func(t *testing.T) {
		req := validRequest()
		req.DomainChoice = string(consts.DomainCustom)
		require.Error(t, order.Validate(req))

		req.DomainName = "kamaucrafts.co.ke"
		require.NoError(t, order.Validate(req))

		req = validRequest()
		req.DomainChoice = string(consts.DomainRegisteredForMe)
		require.NoError(t, order.Validate(req))
	})

	t.Run("custom color required iff custom theme", func(t *testing.T) {
		req := validRequest()
		req.ThemeChoice = string(consts.ThemeCustom)
		require.Error(t, order.Validate(req))

		req.CustomColor = "#1a6b3c"
		require.NoError(t, order.Validate(req))
	})

	t.Run("missing required category field", func(t *testing.T) {
		req := validRequest()
		delete(req.Form, "business_name")
		err := order.Validate(req)
		require.Error(t, err)
		require.Contains(t, err.Error(), "business_name")
	})
}

func Test_SanitizeFilename_Strips_Disallowed_Runes(t *testing.T) {
	cases := map[string]string{
		"logo.png":            "logo.png",
		"my logo (final).png": "my-logo-final.png",
		"../../etc/passwd":    "......etcpasswd",
		"фото.jpg":            ".jpg",
		"###":                 "file",
		"a_b-c.d":             "a_b-c.d",
	}
	for in, want := range cases {
		require.Equal(t, want, order.SanitizeFilename(in), "input %q", in)
	}
}
