package handlers

import (
	"Cruder/internal/crud"
	"Cruder/internal/services"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CrudHandler serves list/get/create/update/delete for one resource by
// forwarding to a crud.Repository. Route keys are read from the "id" param.
type CrudHandler[T any, K comparable] struct {
	resource string
	repo     crud.Repository[T, K]
	key      *crud.KeyInfo[T, K]
	log      *logrus.Logger
}

func NewCrudHandler[T any, K comparable](resource string, repo crud.Repository[T, K], logService services.LogService) (*CrudHandler[T, K], error) {
	key, err := crud.ResolveKey[T, K]()
	if err != nil {
		return nil, fmt.Errorf("%s handler: %w", resource, err)
	}
	return &CrudHandler[T, K]{
		resource: resource,
		repo:     repo,
		key:      key,
		log:      logService.Log,
	}, nil
}

func (h *CrudHandler[T, K]) Resource() string {
	return h.resource
}

func (h *CrudHandler[T, K]) List(c *fiber.Ctx) error {
	values, err := h.repo.ReadAll(c.UserContext())
	if err != nil {
		return h.storeError(c, "list", nil, err)
	}
	if len(values) == 0 {
		return h.notFound(c)
	}
	h.log.WithFields(logrus.Fields{"resource": h.resource, "count": len(values)}).Debug("listed")
	return c.JSON(values)
}

func (h *CrudHandler[T, K]) Get(c *fiber.Ctx) error {
	key, err := h.parseKey(c)
	if err != nil {
		return err
	}

	value, err := h.repo.Read(c.UserContext(), key)
	if err != nil {
		return h.storeError(c, "get", key, err)
	}
	if value == nil {
		return h.notFound(c)
	}
	return c.JSON(value)
}

func (h *CrudHandler[T, K]) Create(c *fiber.Ctx) error {
	value := new(T)
	if err := c.BodyParser(value); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if h.key.Generated() {
		h.key.Clear(value)
	}

	created, err := h.repo.Create(c.UserContext(), value)
	if err != nil {
		return h.storeError(c, "create", nil, err)
	}
	if created == nil {
		return h.notFound(c)
	}
	h.log.WithFields(logrus.Fields{"resource": h.resource, "key": h.key.Get(created)}).Debug("created")
	return c.Status(http.StatusCreated).JSON(created)
}

func (h *CrudHandler[T, K]) Update(c *fiber.Ctx) error {
	key, err := h.parseKey(c)
	if err != nil {
		return err
	}

	value := new(T)
	if err := c.BodyParser(value); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	h.key.Set(value, key)

	updated, err := h.repo.Update(c.UserContext(), key, value)
	if err != nil {
		return h.storeError(c, "update", key, err)
	}
	if !updated {
		return h.notFound(c)
	}
	h.log.WithFields(logrus.Fields{"resource": h.resource, "key": key}).Debug("updated")
	return c.JSON(value)
}

func (h *CrudHandler[T, K]) Delete(c *fiber.Ctx) error {
	key, err := h.parseKey(c)
	if err != nil {
		return err
	}

	deleted, err := h.repo.Delete(c.UserContext(), key)
	if err != nil {
		return h.storeError(c, "delete", key, err)
	}
	if !deleted {
		return c.Status(http.StatusNotFound).JSON(false)
	}
	h.log.WithFields(logrus.Fields{"resource": h.resource, "key": key}).Debug("deleted")
	return c.JSON(true)
}

// parseKey returns the *crud.KeyError unhandled; the app error handler
// turns it into a 400.
func (h *CrudHandler[T, K]) parseKey(c *fiber.Ctx) (K, error) {
	return h.key.Parse(c.Params("id"))
}

func (h *CrudHandler[T, K]) notFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": h.resource + " not found"})
}

func (h *CrudHandler[T, K]) storeError(c *fiber.Ctx, operation string, key any, err error) error {
	fields := logrus.Fields{
		"resource":  h.resource,
		"operation": operation,
		"error":     err.Error(),
	}
	if key != nil {
		fields["key"] = key
	}
	h.log.WithFields(fields).Error("store operation failed")
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("could not %s %s", operation, h.resource)})
}
