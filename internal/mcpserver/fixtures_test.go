package mcpserver

// ordersFile is a service description shared with the source package tests.
const ordersFile = "../../source/testdata/orders.yaml"

// minimalDescription is a small inline service description.
const minimalDescription = `name: shop
info:
  title: Shop Events
  version: 1.0.0
operations:
  - name: publishOrder
    channel: orders/created
    payload: Order
models:
  - name: Order
    schema:
      type: object
      properties:
        id: {type: string}
`

// validDocument is a complete AsyncAPI document with resolvable references.
const validDocument = `asyncapi: 3.0.0
info:
  title: Orders
  version: 1.0.0
  description: Order events
channels:
  orders:
    address: orders
    messages:
      Order:
        $ref: '#/components/messages/Order'
operations:
  publishOrder:
    action: send
    channel:
      $ref: '#/channels/orders'
    messages:
      - $ref: '#/channels/orders/messages/Order'
components:
  messages:
    Order:
      name: Order
      contentType: application/json
      payload:
        type: object
`

// danglingDocument has an operation whose channel does not exist.
const danglingDocument = `asyncapi: 3.0.0
info:
  title: Orders
  version: 1.0.0
  description: Order events
channels:
  orders:
    address: orders
operations:
  publishOrder:
    action: publish
    channel:
      $ref: '#/channels/missing'
components: {}
`
